package sales_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/application/sales"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Un memStore compartido respalda todos los repositorios; el fakeSaleTxRunner
// toma una instantánea antes del callback y la restaura si falla, imitando el
// rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	sessions   map[string]*entity.CaisseSession
	caisseMovs []*entity.CaisseMovement
	salesList  []*entity.Sale
	notifs     []*entity.Notification
	customers  map[string]*entity.Customer
	promotions []*entity.Promotion

	dailySummaryCalls int
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		sessions:  make(map[string]*entity.CaisseSession),
		customers: make(map[string]*entity.Customer),
	}
}

type storeSnapshot struct {
	products   map[string]entity.Product
	sessions   map[string]entity.CaisseSession
	movements  int
	caisseMovs int
	salesList  int
	notifs     int
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		products:   make(map[string]entity.Product, len(s.products)),
		sessions:   make(map[string]entity.CaisseSession, len(s.sessions)),
		movements:  len(s.movements),
		caisseMovs: len(s.caisseMovs),
		salesList:  len(s.salesList),
		notifs:     len(s.notifs),
	}
	for id, p := range s.products {
		snap.products[id] = *p
	}
	for id, sess := range s.sessions {
		snap.sessions[id] = *sess
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	for id, p := range snap.products {
		cp := p
		s.products[id] = &cp
	}
	for id, sess := range snap.sessions {
		cp := sess
		s.sessions[id] = &cp
	}
	s.movements = s.movements[:snap.movements]
	s.caisseMovs = s.caisseMovs[:snap.caisseMovs]
	s.salesList = s.salesList[:snap.salesList]
	s.notifs = s.notifs[:snap.notifs]
}

// ── Repositorios sobre el memStore ──

type storeProducts struct{ s *memStore }

func (r storeProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r storeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r storeProducts) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r storeProducts) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r storeProducts) Update(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r storeProducts) UpdateStock(_ context.Context, productID string, quantity int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r storeProducts) List(_ context.Context, _, _ int) ([]*entity.Product, error) { return nil, nil }
func (r storeProducts) Delete(_ context.Context, _ string) error                    { return nil }

type storeMovements struct{ s *memStore }

func (r storeMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r storeMovements) GetByID(_ context.Context, _ string) (*entity.StockMovement, error) {
	return nil, nil
}

func (r storeMovements) ListByProduct(_ context.Context, _ string, _ repository.MovementFilter, _, _ int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r storeMovements) CountByProduct(_ context.Context, _ string, _ repository.MovementFilter) (int64, error) {
	return 0, nil
}

type storeSessions struct{ s *memStore }

func (r storeSessions) Create(_ context.Context, sess *entity.CaisseSession) error {
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return nil
}

func (r storeSessions) GetByID(_ context.Context, id string) (*entity.CaisseSession, error) {
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r storeSessions) GetByIDForUpdate(ctx context.Context, id string) (*entity.CaisseSession, error) {
	return r.GetByID(ctx, id)
}

func (r storeSessions) GetActiveByUser(_ context.Context, _ string) (*entity.CaisseSession, error) {
	return nil, nil
}

func (r storeSessions) Update(_ context.Context, sess *entity.CaisseSession) error {
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return nil
}

func (r storeSessions) ListByUser(_ context.Context, _ string, _, _ int) ([]*entity.CaisseSession, error) {
	return nil, nil
}

type storeCaisseMovs struct{ s *memStore }

func (r storeCaisseMovs) Create(_ context.Context, m *entity.CaisseMovement) error {
	r.s.caisseMovs = append(r.s.caisseMovs, m)
	return nil
}

func (r storeCaisseMovs) ListBySession(_ context.Context, _ string, _, _ int) ([]*entity.CaisseMovement, error) {
	return nil, nil
}

type storeSales struct{ s *memStore }

func (r storeSales) Create(_ context.Context, sale *entity.Sale) error {
	r.s.salesList = append(r.s.salesList, sale)
	return nil
}

func (r storeSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	for _, sale := range r.s.salesList {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, nil
}

func (r storeSales) GetBySaleNumber(_ context.Context, saleNumber string) (*entity.Sale, error) {
	for _, sale := range r.s.salesList {
		if sale.SaleNumber == saleNumber {
			return sale, nil
		}
	}
	return nil, nil
}

func (r storeSales) List(_ context.Context, _, _ *time.Time, _, _ int) ([]*entity.Sale, error) {
	return r.s.salesList, nil
}

func (r storeSales) ListBySession(_ context.Context, sessionID string, _, _ int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, sale := range r.s.salesList {
		if sale.CaisseSessionID == sessionID {
			list = append(list, sale)
		}
	}
	return list, nil
}

func (r storeSales) DailySummary(_ context.Context, _ time.Time) ([]repository.DailySummaryRow, error) {
	r.s.dailySummaryCalls++
	byMethod := make(map[string]*repository.DailySummaryRow)
	for _, sale := range r.s.salesList {
		row, ok := byMethod[sale.PaymentMethod]
		if !ok {
			row = &repository.DailySummaryRow{PaymentMethod: sale.PaymentMethod, Total: decimal.Zero}
			byMethod[sale.PaymentMethod] = row
		}
		row.SalesCount++
		row.Total = row.Total.Add(sale.TotalAmount)
	}
	var rows []repository.DailySummaryRow
	for _, row := range byMethod {
		rows = append(rows, *row)
	}
	return rows, nil
}

type storeNotifs struct{ s *memStore }

func (r storeNotifs) Create(_ context.Context, n *entity.Notification) error {
	r.s.notifs = append(r.s.notifs, n)
	return nil
}

func (r storeNotifs) List(_ context.Context, _ bool, _, _ int) ([]*entity.Notification, error) {
	return r.s.notifs, nil
}

func (r storeNotifs) MarkRead(_ context.Context, _ string) error { return nil }

type storeCustomers struct{ s *memStore }

func (r storeCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

func (r storeCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r storeCustomers) Update(_ context.Context, _ *entity.Customer) error { return nil }
func (r storeCustomers) List(_ context.Context, _, _ int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r storeCustomers) Delete(_ context.Context, _ string) error { return nil }

type storePromotions struct{ s *memStore }

func (r storePromotions) Create(_ context.Context, p *entity.Promotion) error {
	r.s.promotions = append(r.s.promotions, p)
	return nil
}

func (r storePromotions) GetByID(_ context.Context, _ string) (*entity.Promotion, error) {
	return nil, nil
}

func (r storePromotions) Update(_ context.Context, _ *entity.Promotion) error { return nil }

func (r storePromotions) List(_ context.Context, _, _ int) ([]*entity.Promotion, error) {
	return r.s.promotions, nil
}

func (r storePromotions) ListActiveAt(_ context.Context, at time.Time) ([]*entity.Promotion, error) {
	var list []*entity.Promotion
	for _, p := range r.s.promotions {
		if p.Active && !at.Before(p.StartsAt) && !at.After(p.EndsAt) {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r storePromotions) Delete(_ context.Context, _ string) error { return nil }

// fakeSaleTxRunner restaura la instantánea del store si el callback falla.
type fakeSaleTxRunner struct{ s *memStore }

func (r fakeSaleTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	sessionRepo repository.CaisseSessionRepository,
	caisseMovRepo repository.CaisseMovementRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(storeSales{r.s}, storeMovements{r.s}, storeProducts{r.s},
		storeNotifs{r.s}, storeSessions{r.s}, storeCaisseMovs{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// recordingCache registra las claves tocadas.
type recordingCache struct {
	data    map[string][]byte
	deleted []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: make(map[string][]byte)}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, bool) {
	raw, ok := c.data[key]
	return raw, ok
}

func (c *recordingCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.data[key] = value
}

func (c *recordingCache) Delete(_ context.Context, key string) {
	c.deleted = append(c.deleted, key)
	delete(c.data, key)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

type saleFixture struct {
	uc    *sales.PostSaleUseCase
	store *memStore
	cache *recordingCache
}

// newSaleFixture arma el caso de uso con el motor de stock y la caja reales
// (vía sus métodos *InTx) sobre repositorios en memoria.
func newSaleFixture(products ...*entity.Product) saleFixture {
	store := newMemStore()
	for _, p := range products {
		store.products[p.ID] = p
	}
	cache := newRecordingCache()
	stockLedger := ledger.NewRegisterMovementUseCase(nil, storeProducts{store})
	cashRegister := caisse.NewSessionUseCase(nil, storeSessions{store}, storeCaisseMovs{store})
	uc := sales.NewPostSaleUseCase(
		fakeSaleTxRunner{store}, stockLedger, cashRegister,
		storeProducts{store}, storeCustomers{store},
		storeSessions{store}, storePromotions{store}, cache,
	)
	return saleFixture{uc: uc, store: store, cache: cache}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeSession(store *memStore, id, userID string, amount decimal.Decimal) {
	store.sessions[id] = &entity.CaisseSession{
		ID:            id,
		UserID:        userID,
		OpeningAmount: amount,
		CurrentAmount: amount,
		Status:        entity.SessionStatusActive,
		OpenedAt:      time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestPostSale_TotalesConImpuesto(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"),
		TaxRate: dec("0.19"), StockQuantity: 50,
	})

	resp, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod: entity.PaymentMethodCard,
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 3, UnitPrice: dec("10.00")}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("30.00")), "subtotal sin impuesto")
	assert.True(t, resp.TaxAmount.Equal(dec("5.70")))
	assert.True(t, resp.TotalAmount.Equal(dec("35.70")))
	assert.True(t, strings.HasPrefix(resp.SaleNumber, "V-"))

	// La salida de stock referencia el número de venta
	require.Len(t, fx.store.movements, 1)
	assert.Equal(t, entity.MovementTypeOut, fx.store.movements[0].Type)
	assert.Equal(t, resp.SaleNumber, fx.store.movements[0].Reference)
	assert.Equal(t, int64(47), fx.store.products["p-1"].StockQuantity)
}

func TestPostSale_PrecioCeroUsaElDelProducto(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("8.50"),
		TaxRate: decimal.Zero, StockQuantity: 10,
	})

	resp, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod: entity.PaymentMethodCard,
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(dec("17.00")))
}

func TestPostSale_AplicaLaMejorPromocion(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"),
		TaxRate: dec("0.19"), StockQuantity: 50,
	})
	now := time.Now()
	fx.store.promotions = []*entity.Promotion{
		{
			ID: "promo-amount", Name: "1.00 por unidad", ProductID: "p-1",
			DiscountType: entity.DiscountTypeAmount, Value: dec("1.00"),
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), Active: true,
		},
		{
			ID: "promo-percent", Name: "20% catálogo",
			DiscountType: entity.DiscountTypePercent, Value: dec("20"),
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), Active: true,
		},
	}

	resp, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod: entity.PaymentMethodCard,
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 3, UnitPrice: dec("10.00")}},
	})
	require.NoError(t, err)

	// 20% de 30.00 = 6.00 gana sobre 1.00 x 3 = 3.00
	assert.True(t, resp.DiscountAmount.Equal(dec("6.00")))
	// impuesto sobre la base descontada: (30 - 6) * 0.19 = 4.56
	assert.True(t, resp.TaxAmount.Equal(dec("4.56")))
	assert.True(t, resp.TotalAmount.Equal(dec("28.56")))
}

func TestPostSale_EfectivoEnSesionSubeLaCaja(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"),
		TaxRate: decimal.Zero, StockQuantity: 50,
	})
	activeSession(fx.store, "s-1", "u-1", dec("100.00"))

	resp, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod:   entity.PaymentMethodCash,
		CaisseSessionID: "s-1",
		Items:           []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")}},
	})
	require.NoError(t, err)

	session := fx.store.sessions["s-1"]
	assert.True(t, session.CurrentAmount.Equal(dec("120.00")),
		"el total de la venta en efectivo entra a caja")
	require.Len(t, fx.store.caisseMovs, 1)
	assert.Equal(t, entity.CaisseMovementSale, fx.store.caisseMovs[0].Type)
	assert.Equal(t, resp.SaleNumber, fx.store.caisseMovs[0].Reference)
	assert.True(t, fx.store.caisseMovs[0].Amount.Equal(dec("20.00")))
}

func TestPostSale_TarjetaNoTocaLaCaja(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"),
		TaxRate: decimal.Zero, StockQuantity: 50,
	})
	activeSession(fx.store, "s-1", "u-1", dec("100.00"))

	_, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod:   entity.PaymentMethodCard,
		CaisseSessionID: "s-1",
		Items:           []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")}},
	})
	require.NoError(t, err)

	assert.True(t, fx.store.sessions["s-1"].CurrentAmount.Equal(dec("100.00")))
	assert.Empty(t, fx.store.caisseMovs)
}

func TestPostSale_StockInsuficienteRevierteTodo(t *testing.T) {
	fx := newSaleFixture(
		&entity.Product{ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"), StockQuantity: 50},
		&entity.Product{ID: "p-2", SKU: "SKU-2", Name: "Azúcar", Price: dec("5.00"), StockQuantity: 1},
	)
	activeSession(fx.store, "s-1", "u-1", dec("100.00"))

	_, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod:   entity.PaymentMethodCash,
		CaisseSessionID: "s-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")},
			{ProductID: "p-2", Quantity: 3, UnitPrice: dec("5.00")}, // solo hay 1
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó visible: ni venta, ni salidas de stock, ni delta de caja
	assert.Empty(t, fx.store.salesList)
	assert.Empty(t, fx.store.movements)
	assert.Empty(t, fx.store.caisseMovs)
	assert.Equal(t, int64(50), fx.store.products["p-1"].StockQuantity,
		"la primera línea también debe revertirse")
	assert.True(t, fx.store.sessions["s-1"].CurrentAmount.Equal(dec("100.00")))
}

func TestPostSale_SesionCerradaRechazada(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"), StockQuantity: 50,
	})
	closedAt := time.Now()
	fx.store.sessions["s-1"] = &entity.CaisseSession{
		ID: "s-1", UserID: "u-1", Status: entity.SessionStatusClosed,
		CurrentAmount: dec("100"), ClosedAt: &closedAt,
	}

	_, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod:   entity.PaymentMethodCash,
		CaisseSessionID: "s-1",
		Items:           []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestPostSale_Validacion(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"), StockQuantity: 50,
	})

	cases := []struct {
		name string
		in   dto.PostSaleRequest
		want error
	}{
		{"sin líneas", dto.PostSaleRequest{PaymentMethod: entity.PaymentMethodCash}, domain.ErrInvalidInput},
		{"método de pago desconocido", dto.PostSaleRequest{
			PaymentMethod: "cheque",
			Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
		}, domain.ErrInvalidInput},
		{"cantidad cero", dto.PostSaleRequest{
			PaymentMethod: entity.PaymentMethodCash,
			Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 0}},
		}, domain.ErrInvalidInput},
		{"producto inexistente", dto.PostSaleRequest{
			PaymentMethod: entity.PaymentMethodCash,
			Items:         []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: 1}},
		}, domain.ErrProductNotFound},
		{"sesión inexistente", dto.PostSaleRequest{
			PaymentMethod:   entity.PaymentMethodCash,
			CaisseSessionID: "no-existe",
			Items:           []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1}},
		}, domain.ErrSessionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.uc.PostSale(context.Background(), "u-1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPostSale_InvalidaElResumenDiarioCacheado(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"), StockQuantity: 50,
	})

	_, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
		PaymentMethod: entity.PaymentMethodCard,
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}},
	})
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	require.Len(t, fx.cache.deleted, 1)
	assert.Equal(t, "sales:daily:"+today, fx.cache.deleted[0])
}

func TestDailySummary_CacheaYAgregaPorMetodo(t *testing.T) {
	fx := newSaleFixture(&entity.Product{
		ID: "p-1", SKU: "SKU-1", Name: "Café", Price: dec("10.00"), StockQuantity: 50,
	})
	query := sales.NewSaleQueryUseCase(storeSales{fx.store}, fx.cache)

	for _, method := range []string{entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodCash} {
		_, err := fx.uc.PostSale(context.Background(), "u-1", dto.PostSaleRequest{
			PaymentMethod: method,
			Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}},
		})
		require.NoError(t, err)
	}

	day := time.Now()
	summary, err := query.DailySummary(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.SalesCount)
	assert.True(t, summary.Total.Equal(dec("30.00")))
	assert.Len(t, summary.ByMethod, 2)

	// Segunda lectura sale del cache, sin tocar el repositorio
	calls := fx.store.dailySummaryCalls
	again, err := query.DailySummary(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, calls, fx.store.dailySummaryCalls)
	assert.Equal(t, summary.SalesCount, again.SalesCount)
}
