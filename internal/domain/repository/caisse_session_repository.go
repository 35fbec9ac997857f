package repository

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// CaisseSessionRepository define el puerto de persistencia para sesiones de caja.
type CaisseSessionRepository interface {
	Create(ctx context.Context, session *entity.CaisseSession) error
	GetByID(ctx context.Context, id string) (*entity.CaisseSession, error)
	// GetByIDForUpdate bloquea la fila de la sesión (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.CaisseSession, error)
	// GetActiveByUser devuelve la sesión activa del usuario o nil si no hay.
	GetActiveByUser(ctx context.Context, userID string) (*entity.CaisseSession, error)
	Update(ctx context.Context, session *entity.CaisseSession) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CaisseSession, error)
}

// CaisseMovementRepository define el puerto para el libro de movimientos de caja.
// Solo inserta y lee: los movimientos son inmutables.
type CaisseMovementRepository interface {
	Create(ctx context.Context, movement *entity.CaisseMovement) error
	ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]*entity.CaisseMovement, error)
}
