package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// PromotionRepository define el puerto de persistencia para Promotion.
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	GetByID(ctx context.Context, id string) (*entity.Promotion, error)
	Update(ctx context.Context, promotion *entity.Promotion) error
	List(ctx context.Context, limit, offset int) ([]*entity.Promotion, error)
	// ListActiveAt devuelve promociones activas y vigentes en el instante dado.
	ListActiveAt(ctx context.Context, at time.Time) ([]*entity.Promotion, error)
	Delete(ctx context.Context, id string) error
}
