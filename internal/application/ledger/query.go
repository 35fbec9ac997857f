package ledger

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

const defaultHistoryLimit = 50

// StockQueryUseCase proyecta saldos e historial desde el libro de movimientos.
// Solo lectura: no escribe nada.
type StockQueryUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// CurrentBalance devuelve el saldo actual del producto (denormalizado, siempre >= 0).
func (uc *StockQueryUseCase) CurrentBalance(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}
	return product.StockQuantity, nil
}

// History devuelve el historial de movimientos del producto, más recientes
// primero, paginado con limit/offset.
func (uc *StockQueryUseCase) History(ctx context.Context, productID string, filter repository.MovementFilter, limit, offset int) (*dto.MovementHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	movements, err := uc.movementRepo.ListByProduct(ctx, productID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.CountByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementHistoryResponse{
		ProductID: productID,
		Total:     total,
		Items:     items,
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ProjectedBalance recalcula el saldo plegando todo el libro de movimientos.
// Debe coincidir siempre con CurrentBalance; sirve para auditoría y para el
// test suite (detecta deriva del saldo denormalizado).
func (uc *StockQueryUseCase) ProjectedBalance(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}

	var balance int64
	offset := 0
	for {
		page, err := uc.movementRepo.ListByProduct(ctx, productID, repository.MovementFilter{}, defaultHistoryLimit, offset)
		if err != nil {
			return 0, err
		}
		for _, m := range page {
			switch m.Type {
			case entity.MovementTypeIn, entity.MovementTypeAdjustment:
				balance += m.Quantity
			case entity.MovementTypeOut:
				balance -= m.Quantity
			}
		}
		if len(page) < defaultHistoryLimit {
			return balance, nil
		}
		offset += defaultHistoryLimit
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reference:     m.Reference,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
