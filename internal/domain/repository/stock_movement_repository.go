package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para el historial de movimientos.
type MovementFilter struct {
	Type string // in, out, adjustment; vacío = todos
	From *time.Time
	To   *time.Time
}

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos de stock. Solo inserta y lee: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct devuelve movimientos del producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(ctx context.Context, productID string, filter MovementFilter) (int64, error)
}
