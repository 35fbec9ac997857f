package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, product_id, type, quantity, previous_stock, new_stock, reference, notes, created_by, created_at`

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: el libro es inmutable, no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock,
		nullable(movement.Reference), nullable(movement.Notes),
		nullable(movement.CreatedBy), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanStockMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = applyMovementFilter(query, args, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta movimientos de un producto con el mismo filtro que ListByProduct.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string, filter repository.MovementFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = applyMovementFilter(query, args, filter)
	var count int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by product: %w", err)
	}
	return count, nil
}

func applyMovementFilter(query string, args []any, filter repository.MovementFilter) (string, []any) {
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", len(args)+1)
		args = append(args, filter.Type)
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *filter.To)
	}
	return query, args
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reference, notes, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.NewStock, &reference, &notes, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	m.Reference = deref(reference)
	m.Notes = deref(notes)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
