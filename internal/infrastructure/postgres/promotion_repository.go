package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

const promotionColumns = `id, name, product_id, discount_type, value, starts_at, ends_at, active, created_at, updated_at`

// PromotionRepo implementación sobre PostgreSQL (usable con pool o tx).
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

// Create persiste una promoción.
func (r *PromotionRepo) Create(ctx context.Context, promotion *entity.Promotion) error {
	if promotion.ID == "" {
		promotion.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		promotion.ID, promotion.Name, nullable(promotion.ProductID),
		promotion.DiscountType, promotion.Value, promotion.StartsAt, promotion.EndsAt,
		promotion.Active, promotion.CreatedAt, promotion.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create promotion: %w", err)
	}
	return nil
}

// GetByID obtiene una promoción por ID.
func (r *PromotionRepo) GetByID(ctx context.Context, id string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	p, err := scanPromotion(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Update actualiza una promoción.
func (r *PromotionRepo) Update(ctx context.Context, promotion *entity.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $2, product_id = $3, discount_type = $4, value = $5,
		    starts_at = $6, ends_at = $7, active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		promotion.ID, promotion.Name, nullable(promotion.ProductID),
		promotion.DiscountType, promotion.Value, promotion.StartsAt, promotion.EndsAt,
		promotion.Active, promotion.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista promociones, más recientes primero.
func (r *PromotionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListActiveAt devuelve promociones activas y vigentes en el instante dado.
func (r *PromotionRepo) ListActiveAt(ctx context.Context, at time.Time) ([]*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions
		WHERE active = true AND starts_at <= $1 AND ends_at >= $1`
	return r.list(ctx, query, at)
}

// Delete elimina una promoción por ID.
func (r *PromotionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PromotionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Promotion, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var p entity.Promotion
	var productID *string
	err := row.Scan(
		&p.ID, &p.Name, &productID, &p.DiscountType, &p.Value,
		&p.StartsAt, &p.EndsAt, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan promotion: %w", err)
	}
	p.ProductID = deref(productID)
	return &p, nil
}
