package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

const dailySummaryTTL = time.Minute

// SaleQueryUseCase lecturas de ventas: detalle, listados y resumen diario.
// El resumen diario se cachea en Redis (se invalida al registrar una venta).
type SaleQueryUseCase struct {
	saleRepo repository.SaleRepository
	cache    Cache
}

// NewSaleQueryUseCase construye el caso de uso. cache puede ser nil.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository, cache Cache) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, cache: cache}
}

// GetByID devuelve una venta con sus líneas.
func (uc *SaleQueryUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// List lista ventas en un rango de fechas, más recientes primero.
func (uc *SaleQueryUseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) (*dto.SaleListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	sales, err := uc.saleRepo.List(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListBySession lista las ventas registradas dentro de una sesión de caja.
func (uc *SaleQueryUseCase) ListBySession(ctx context.Context, sessionID string, limit, offset int) (*dto.SaleListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	sales, err := uc.saleRepo.ListBySession(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// DailySummary agrega las ventas del día por método de pago.
func (uc *SaleQueryUseCase) DailySummary(ctx context.Context, day time.Time) (*dto.DailySummaryResponse, error) {
	key := dailySummaryCacheKey(day)
	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, key); ok {
			var cached dto.DailySummaryResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	rows, err := uc.saleRepo.DailySummary(ctx, day)
	if err != nil {
		return nil, err
	}
	summary := &dto.DailySummaryResponse{
		Date:  day.Format("2006-01-02"),
		Total: decimal.Zero,
	}
	for _, row := range rows {
		summary.ByMethod = append(summary.ByMethod, dto.DailySummaryMethod{
			PaymentMethod: row.PaymentMethod,
			SalesCount:    row.SalesCount,
			Total:         row.Total,
		})
		summary.SalesCount += row.SalesCount
		summary.Total = summary.Total.Add(row.Total)
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			uc.cache.Set(ctx, key, raw, dailySummaryTTL)
		}
	}
	return summary, nil
}

func dailySummaryCacheKey(day time.Time) string {
	return fmt.Sprintf("sales:daily:%s", day.Format("2006-01-02"))
}
