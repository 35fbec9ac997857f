package caisse_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[string]*entity.CaisseSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.CaisseSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.CaisseSession) error {
	// Simula el índice único parcial: una sola sesión activa por usuario.
	for _, existing := range r.sessions {
		if existing.UserID == s.UserID && existing.Status == entity.SessionStatusActive {
			return domain.ErrDuplicate
		}
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*entity.CaisseSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CaisseSession, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSessionRepo) GetActiveByUser(_ context.Context, userID string) (*entity.CaisseSession, error) {
	for _, s := range r.sessions {
		if s.UserID == userID && s.Status == entity.SessionStatusActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.CaisseSession) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.CaisseSession, error) {
	var list []*entity.CaisseSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			list = append(list, s)
		}
	}
	return list, nil
}

type fakeCaisseMovRepo struct {
	movements []*entity.CaisseMovement
}

func (r *fakeCaisseMovRepo) Create(_ context.Context, m *entity.CaisseMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeCaisseMovRepo) ListBySession(_ context.Context, sessionID string, limit, offset int) ([]*entity.CaisseMovement, error) {
	var list []*entity.CaisseMovement
	for _, m := range r.movements {
		if m.SessionID == sessionID {
			list = append(list, m)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type fakeCaisseTxRunner struct {
	sessionRepo *fakeSessionRepo
	movRepo     *fakeCaisseMovRepo
}

func (r *fakeCaisseTxRunner) RunCaisse(ctx context.Context, fn func(
	sessionRepo repository.CaisseSessionRepository,
	movRepo repository.CaisseMovementRepository,
) error) error {
	return fn(r.sessionRepo, r.movRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func newSessionFixture() (*caisse.SessionUseCase, *fakeCaisseTxRunner) {
	runner := &fakeCaisseTxRunner{
		sessionRepo: newFakeSessionRepo(),
		movRepo:     &fakeCaisseMovRepo{},
	}
	return caisse.NewSessionUseCase(runner, runner.sessionRepo, runner.movRepo), runner
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_CreaSesionActiva(t *testing.T) {
	uc, _ := newSessionFixture()

	session, err := uc.Open(context.Background(), "u-1", dec("100.00"))
	require.NoError(t, err)

	assert.Equal(t, entity.SessionStatusActive, session.Status)
	assert.True(t, session.OpeningAmount.Equal(dec("100.00")))
	assert.True(t, session.CurrentAmount.Equal(dec("100.00")),
		"el saldo corriente arranca igual al monto de apertura")
	assert.Nil(t, session.ClosedAt)
}

func TestOpen_SegundaSesionActiva_Rechazada(t *testing.T) {
	uc, _ := newSessionFixture()

	_, err := uc.Open(context.Background(), "u-1", dec("100"))
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), "u-1", dec("50"))
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyActive)

	// Otro usuario sí puede abrir la suya
	_, err = uc.Open(context.Background(), "u-2", dec("50"))
	assert.NoError(t, err)
}

func TestOpen_MontoNegativo_Invalido(t *testing.T) {
	uc, _ := newSessionFixture()

	_, err := uc.Open(context.Background(), "u-1", dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyCashDelta_DepositoYRetiro(t *testing.T) {
	uc, runner := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("100"))
	require.NoError(t, err)

	updated, err := uc.ApplyCashDelta(context.Background(), session.ID, dto.CashMovementRequest{
		Type: entity.CaisseMovementDeposit, Amount: dec("25.50"), Notes: "cambio adicional",
	})
	require.NoError(t, err)
	assert.True(t, updated.CurrentAmount.Equal(dec("125.50")))

	updated, err = uc.ApplyCashDelta(context.Background(), session.ID, dto.CashMovementRequest{
		Type: entity.CaisseMovementWithdrawal, Amount: dec("20"),
	})
	require.NoError(t, err)
	assert.True(t, updated.CurrentAmount.Equal(dec("105.50")))

	// El libro registra ambos asientos con signo
	require.Len(t, runner.movRepo.movements, 2)
	assert.True(t, runner.movRepo.movements[0].Amount.Equal(dec("25.50")))
	assert.True(t, runner.movRepo.movements[1].Amount.Equal(dec("-20")),
		"los retiros se asientan con monto negativo")
}

func TestApplyCashDelta_RetiroDejariaCajaNegativa(t *testing.T) {
	uc, runner := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("30"))
	require.NoError(t, err)

	_, err = uc.ApplyCashDelta(context.Background(), session.ID, dto.CashMovementRequest{
		Type: entity.CaisseMovementWithdrawal, Amount: dec("30.01"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Ni el saldo ni el libro deben cambiar
	current, _ := runner.sessionRepo.GetByID(context.Background(), session.ID)
	assert.True(t, current.CurrentAmount.Equal(dec("30")))
	assert.Empty(t, runner.movRepo.movements)
}

func TestApplyCashDelta_Validacion(t *testing.T) {
	uc, _ := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("30"))
	require.NoError(t, err)

	cases := []dto.CashMovementRequest{
		{Type: entity.CaisseMovementDeposit, Amount: dec("0")},
		{Type: entity.CaisseMovementDeposit, Amount: dec("-5")},
		{Type: "sale", Amount: dec("5")}, // 'sale' solo lo asienta el flujo de ventas
		{Type: "transfer", Amount: dec("5")},
	}
	for _, in := range cases {
		_, err := uc.ApplyCashDelta(context.Background(), session.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input: %+v", in)
	}
}

func TestApplyCashDelta_SesionCerrada(t *testing.T) {
	uc, _ := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("100"))
	require.NoError(t, err)
	_, err = uc.Close(context.Background(), session.ID, dec("100"), "")
	require.NoError(t, err)

	_, err = uc.ApplyCashDelta(context.Background(), session.ID, dto.CashMovementRequest{
		Type: entity.CaisseMovementDeposit, Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestClose_CalculaEsperadoYDiferencia(t *testing.T) {
	uc, _ := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("100"))
	require.NoError(t, err)

	_, err = uc.ApplyCashDelta(context.Background(), session.ID, dto.CashMovementRequest{
		Type: entity.CaisseMovementDeposit, Amount: dec("50"),
	})
	require.NoError(t, err)

	// El operador cuenta 148.75: faltante de 1.25
	closed, err := uc.Close(context.Background(), session.ID, dec("148.75"), "faltante leve")
	require.NoError(t, err)

	assert.Equal(t, entity.SessionStatusClosed, closed.Status)
	require.NotNil(t, closed.ExpectedAmount)
	require.NotNil(t, closed.ClosingAmount)
	require.NotNil(t, closed.Difference)
	assert.True(t, closed.ExpectedAmount.Equal(dec("150")))
	assert.True(t, closed.ClosingAmount.Equal(dec("148.75")))
	assert.True(t, closed.Difference.Equal(dec("-1.25")),
		"difference = contado - esperado")
	assert.NotNil(t, closed.ClosedAt)
}

func TestClose_DobleCierre_Rechazado(t *testing.T) {
	uc, _ := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("100"))
	require.NoError(t, err)

	_, err = uc.Close(context.Background(), session.ID, dec("100"), "")
	require.NoError(t, err)

	_, err = uc.Close(context.Background(), session.ID, dec("100"), "")
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyClosed,
		"un doble envío del operador debe fallar explícitamente")
}

func TestClose_SesionInexistente(t *testing.T) {
	uc, _ := newSessionFixture()

	_, err := uc.Close(context.Background(), "no-existe", dec("100"), "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestCurrent_SinSesionActiva(t *testing.T) {
	uc, _ := newSessionFixture()

	_, err := uc.Current(context.Background(), "u-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMovements_ListaDeLaSesion(t *testing.T) {
	uc, _ := newSessionFixture()
	session, err := uc.Open(context.Background(), "u-1", dec("100"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := uc.ApplyCashDelta(context.Background(), session.ID, dto.CashMovementRequest{
			Type: entity.CaisseMovementDeposit, Amount: dec("10"),
		})
		require.NoError(t, err)
	}

	items, err := uc.Movements(context.Background(), session.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
