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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_number, customer_id, cashier_id, subtotal, discount_amount, tax_amount, total_amount, payment_method, caisse_session_id, created_at`

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las ventas son inmutables: cabecera y líneas solo se insertan.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y las líneas de la venta.
// Debe llamarse dentro de una transacción (RunSale) para que cabecera,
// líneas, movimientos de stock y delta de caja sean atómicos.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.SaleNumber, nullable(sale.CustomerID), sale.CashierID,
		sale.Subtotal, sale.DiscountAmount, sale.TaxAmount, sale.TotalAmount,
		sale.PaymentMethod, nullable(sale.CaisseSessionID), sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount_amount, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range sale.Items {
		item := &sale.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.SaleID = sale.ID
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.SaleID, item.ProductID, item.Quantity,
			item.UnitPrice, item.DiscountAmount, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySaleNumber obtiene una venta por su número.
func (r *SaleRepo) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_number = $1`
	return r.getOne(ctx, query, saleNumber)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, arg any) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	items, err := r.listItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// List lista ventas en un rango de fechas, más recientes primero. Sin líneas.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *to)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

// ListBySession lista ventas asociadas a una sesión de caja. Sin líneas.
func (r *SaleRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE caisse_session_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, sessionID, limit, offset)
}

// DailySummary agrega las ventas del día (00:00-24:00 de `day`, hora local) por método de pago.
func (r *SaleRepo) DailySummary(ctx context.Context, day time.Time) ([]repository.DailySummaryRow, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	query := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales WHERE created_at >= $1 AND created_at < $2
		GROUP BY payment_method ORDER BY payment_method`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()
	var summary []repository.DailySummaryRow
	for rows.Next() {
		var row repository.DailySummaryRow
		if err := rows.Scan(&row.PaymentMethod, &row.SalesCount, &row.Total); err != nil {
			return nil, fmt.Errorf("scan daily summary: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) listItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, discount_amount, total_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.DiscountAmount, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, sessionID *string
	err := row.Scan(
		&s.ID, &s.SaleNumber, &customerID, &s.CashierID,
		&s.Subtotal, &s.DiscountAmount, &s.TaxAmount, &s.TotalAmount,
		&s.PaymentMethod, &sessionID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	s.CustomerID = deref(customerID)
	s.CaisseSessionID = deref(sessionID)
	return &s, nil
}
