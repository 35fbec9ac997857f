package caisse

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// SessionUseCase maneja el ciclo de vida de las sesiones de caja:
// abrir, registrar movimientos de efectivo y cerrar con arqueo.
// A lo sumo una sesión activa por usuario; el índice único parcial en la DB
// respalda la verificación bajo concurrencia.
type SessionUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.CaisseSessionRepository
	movRepo     repository.CaisseMovementRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(txRunner TxRunner, sessionRepo repository.CaisseSessionRepository, movRepo repository.CaisseMovementRepository) *SessionUseCase {
	return &SessionUseCase{txRunner: txRunner, sessionRepo: sessionRepo, movRepo: movRepo}
}

// Open abre una sesión de caja para el usuario con el monto inicial dado.
// Falla con ErrSessionAlreadyActive si ya existe una sesión activa.
func (uc *SessionUseCase) Open(ctx context.Context, userID string, openingAmount decimal.Decimal) (*dto.SessionResponse, error) {
	if userID == "" || openingAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	active, err := uc.sessionRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrSessionAlreadyActive
	}

	now := time.Now()
	session := &entity.CaisseSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		OpeningAmount: openingAmount.Round(2),
		CurrentAmount: openingAmount.Round(2),
		Status:        entity.SessionStatusActive,
		OpenedAt:      now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		// Carrera entre el check y el insert: el índice único parcial la detecta
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrSessionAlreadyActive
		}
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ApplyCashDelta registra un ingreso o egreso manual de efectivo en la sesión.
// Solo legal mientras la sesión está activa.
func (uc *SessionUseCase) ApplyCashDelta(ctx context.Context, sessionID string, in dto.CashMovementRequest) (*dto.SessionResponse, error) {
	if sessionID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.CaisseMovementDeposit && in.Type != entity.CaisseMovementWithdrawal {
		return nil, domain.ErrInvalidInput
	}
	signed := in.Amount.Round(2)
	if in.Type == entity.CaisseMovementWithdrawal {
		signed = signed.Neg()
	}

	var session *entity.CaisseSession
	err := uc.txRunner.RunCaisse(ctx, func(
		sessionRepo repository.CaisseSessionRepository,
		movRepo repository.CaisseMovementRepository,
	) error {
		var txErr error
		session, txErr = uc.ApplyCashDeltaInTx(ctx, sessionRepo, movRepo, sessionID, signed, in.Type, in.Reference, in.Notes, time.Now())
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ApplyCashDeltaInTx aplica un delta de efectivo usando los repositorios
// proporcionados (misma transacción del caller). Lo usa PostSale para sumar el
// total de una venta en efectivo dentro de la transacción de la venta.
// amount lleva signo: positivo entra a caja, negativo sale.
func (uc *SessionUseCase) ApplyCashDeltaInTx(
	ctx context.Context,
	sessionRepo repository.CaisseSessionRepository,
	movRepo repository.CaisseMovementRepository,
	sessionID string,
	amount decimal.Decimal,
	movType, reference, notes string,
	now time.Time,
) (*entity.CaisseSession, error) {
	// Bloquea la fila de la sesión (SELECT FOR UPDATE)
	session, err := sessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status != entity.SessionStatusActive {
		return nil, domain.ErrSessionNotActive
	}

	next := session.CurrentAmount.Add(amount).Round(2)
	if next.IsNegative() {
		// La caja física no puede quedar en negativo
		return nil, domain.ErrConflict
	}
	session.CurrentAmount = next
	if err := sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	movement := &entity.CaisseMovement{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      movType,
		Amount:    amount,
		Reference: reference,
		Notes:     notes,
		CreatedAt: now,
	}
	if err := movRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return session, nil
}

// Close cierra la sesión con el efectivo contado por el operador.
// expected = current_amount; difference = counted - expected.
// Cerrar una sesión ya cerrada falla con ErrSessionAlreadyClosed (doble envío
// del operador), nunca se ignora en silencio.
func (uc *SessionUseCase) Close(ctx context.Context, sessionID string, countedAmount decimal.Decimal, notes string) (*dto.SessionResponse, error) {
	if sessionID == "" || countedAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var session *entity.CaisseSession
	err := uc.txRunner.RunCaisse(ctx, func(
		sessionRepo repository.CaisseSessionRepository,
		_ repository.CaisseMovementRepository,
	) error {
		s, err := sessionRepo.GetByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrSessionNotFound
		}
		if s.Status == entity.SessionStatusClosed {
			return domain.ErrSessionAlreadyClosed
		}

		now := time.Now()
		expected := s.CurrentAmount
		counted := countedAmount.Round(2)
		difference := counted.Sub(expected).Round(2)

		s.ClosingAmount = &counted
		s.ExpectedAmount = &expected
		s.Difference = &difference
		s.Status = entity.SessionStatusClosed
		s.Notes = notes
		s.ClosedAt = &now
		if err := sessionRepo.Update(ctx, s); err != nil {
			return err
		}
		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Current devuelve la sesión activa del usuario, o ErrSessionNotFound si no hay.
func (uc *SessionUseCase) Current(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return toSessionResponse(session), nil
}

// GetByID devuelve una sesión por ID.
func (uc *SessionUseCase) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return toSessionResponse(session), nil
}

// Movements lista los movimientos de caja de una sesión.
func (uc *SessionUseCase) Movements(ctx context.Context, sessionID string, limit, offset int) ([]dto.CaisseMovementResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	movements, err := uc.movRepo.ListBySession(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CaisseMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.CaisseMovementResponse{
			ID:        m.ID,
			SessionID: m.SessionID,
			Type:      m.Type,
			Amount:    m.Amount,
			Reference: m.Reference,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

func toSessionResponse(s *entity.CaisseSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		OpeningAmount:  s.OpeningAmount,
		CurrentAmount:  s.CurrentAmount,
		ClosingAmount:  s.ClosingAmount,
		ExpectedAmount: s.ExpectedAmount,
		Difference:     s.Difference,
		Status:         s.Status,
		Notes:          s.Notes,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
	}
}
