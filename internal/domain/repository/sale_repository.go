package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// DailySummaryRow agrega ventas de un día por método de pago.
type DailySummaryRow struct {
	PaymentMethod string
	SalesCount    int64
	Total         decimal.Decimal
}

// SaleRepository define el puerto de persistencia para ventas.
// Create persiste cabecera y líneas; las ventas son inmutables después.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error)
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]*entity.Sale, error)
	// DailySummary agrega las ventas del día (00:00–24:00 de `day`) por método de pago.
	DailySummary(ctx context.Context, day time.Time) ([]DailySummaryRow, error)
}
