package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, productID string, quantity int64) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		list = append(list, p)
	}
	return list, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) matches(m *entity.StockMovement, productID string, f repository.MovementFilter) bool {
	if m.ProductID != productID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// ListByProduct devuelve más recientes primero, como el repo real.
func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.matches(r.movements[i], productID, f) {
			all = append(all, r.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMovementRepo) CountByProduct(_ context.Context, productID string, f repository.MovementFilter) (int64, error) {
	var count int64
	for _, m := range r.movements {
		if r.matches(m, productID, f) {
			count++
		}
	}
	return count, nil
}

type fakeNotifRepo struct {
	notifications []*entity.Notification
}

func (r *fakeNotifRepo) Create(_ context.Context, n *entity.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotifRepo) List(_ context.Context, onlyUnread bool, _, _ int) ([]*entity.Notification, error) {
	var list []*entity.Notification
	for _, n := range r.notifications {
		if onlyUnread && n.Read {
			continue
		}
		list = append(list, n)
	}
	return list, nil
}

func (r *fakeNotifRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTxRunner ejecuta el callback directamente con los fakes compartidos.
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
	notifRepo   *fakeNotifRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return fn(r.movRepo, r.productRepo, r.notifRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func newLedgerFixture(stock, reorderPoint int64) (*ledger.RegisterMovementUseCase, *fakeTxRunner) {
	product := &entity.Product{
		ID:            "p-1",
		SKU:           "SKU-1",
		Name:          "Café molido 500g",
		StockQuantity: stock,
		ReorderPoint:  reorderPoint,
	}
	runner := &fakeTxRunner{
		movRepo:     &fakeMovementRepo{},
		productRepo: newFakeProductRepo(product),
		notifRepo:   &fakeNotifRepo{},
	}
	return ledger.NewRegisterMovementUseCase(runner, runner.productRepo), runner
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaIncrementaSaldo(t *testing.T) {
	uc, runner := newLedgerFixture(10, 0)

	m, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 5, UserID: "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), m.PreviousStock)
	assert.Equal(t, int64(15), m.NewStock)
	assert.Equal(t, int64(15), runner.productRepo.products["p-1"].StockQuantity,
		"el saldo denormalizado debe actualizarse en la misma operación")
	assert.Len(t, runner.movRepo.movements, 1)
}

func TestRegisterMovement_SalidaConSaldoSuficiente(t *testing.T) {
	uc, runner := newLedgerFixture(10, 0)

	m, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), m.NewStock, "vaciar el stock exacto es válido")
	assert.Equal(t, int64(0), runner.productRepo.products["p-1"].StockQuantity)
}

func TestRegisterMovement_SalidaInsuficiente_NoEscribeNada(t *testing.T) {
	uc, runner := newLedgerFixture(3, 0)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(3), runner.productRepo.products["p-1"].StockQuantity,
		"el saldo no debe cambiar tras un rechazo")
	assert.Empty(t, runner.movRepo.movements, "no debe registrarse ningún movimiento")
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	uc, runner := newLedgerFixture(10, 0)

	m, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeAdjustment, Quantity: -4, Notes: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), m.NewStock)
	assert.Equal(t, int64(-4), m.Quantity, "el ajuste conserva el signo")

	// Un ajuste que dejaría el saldo negativo se rechaza
	_, err = uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeAdjustment, Quantity: -7,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(6), runner.productRepo.products["p-1"].StockQuantity)
}

func TestRegisterMovement_EncadenaPreviousYNewStock(t *testing.T) {
	uc, runner := newLedgerFixture(0, 0)

	inputs := []ledger.MovementInput{
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 20},
		{ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 5},
		{ProductID: "p-1", Type: entity.MovementTypeAdjustment, Quantity: -3},
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 8},
	}
	for _, in := range inputs {
		_, err := uc.RegisterMovement(context.Background(), in)
		require.NoError(t, err)
	}

	movements := runner.movRepo.movements
	require.Len(t, movements, 4)
	for i := 1; i < len(movements); i++ {
		assert.Equal(t, movements[i-1].NewStock, movements[i].PreviousStock,
			"cada movimiento debe encadenar con el saldo del anterior")
	}
	assert.Equal(t, int64(20), runner.productRepo.products["p-1"].StockQuantity)
}

func TestRegisterMovement_NotificaAlCruzarPuntoDeReorden(t *testing.T) {
	uc, runner := newLedgerFixture(12, 10)

	// 12 -> 9: cruza el punto de reorden (10) hacia abajo
	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 3,
	})
	require.NoError(t, err)
	require.Len(t, runner.notifRepo.notifications, 1)
	assert.Equal(t, entity.NotificationLowStock, runner.notifRepo.notifications[0].Type)
	assert.Equal(t, "p-1", runner.notifRepo.notifications[0].ProductID)

	// 9 -> 7: ya estaba por debajo, no debe duplicar la notificación
	_, err = uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Len(t, runner.notifRepo.notifications, 1,
		"solo se notifica al cruzar el umbral, no en cada salida posterior")
}

func TestRegisterMovement_Validacion(t *testing.T) {
	uc, _ := newLedgerFixture(10, 0)

	cases := []ledger.MovementInput{
		{ProductID: "", Type: entity.MovementTypeIn, Quantity: 1},
		{ProductID: "p-1", Type: "transfer", Quantity: 1},
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 0},
		{ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: -2},
		{ProductID: "p-1", Type: entity.MovementTypeAdjustment, Quantity: 0},
	}
	for _, in := range cases {
		_, err := uc.RegisterMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input: %+v", in)
	}
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _ := newLedgerFixture(10, 0)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "no-existe", Type: entity.MovementTypeIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRegisterOutInTx_UsaReferencia(t *testing.T) {
	uc, runner := newLedgerFixture(10, 0)

	m, err := uc.RegisterOutInTx(context.Background(),
		runner.movRepo, runner.productRepo, runner.notifRepo,
		"p-1", 2, "V-1700000000-abc", "u-9", time.Now())
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeOut, m.Type)
	assert.Equal(t, "V-1700000000-abc", m.Reference)
	assert.Equal(t, "u-9", m.CreatedBy)
}
