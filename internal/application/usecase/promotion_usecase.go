package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// PromotionUseCase casos de uso CRUD para promociones.
// PostSale consulta las vigentes al calcular descuentos.
type PromotionUseCase struct {
	repo repository.PromotionRepository
}

// NewPromotionUseCase construye el caso de uso.
func NewPromotionUseCase(repo repository.PromotionRepository) *PromotionUseCase {
	return &PromotionUseCase{repo: repo}
}

// Create crea una promoción.
func (uc *PromotionUseCase) Create(ctx context.Context, in dto.PromotionRequest) (*dto.PromotionResponse, error) {
	if err := validatePromotion(in); err != nil {
		return nil, err
	}
	now := time.Now()
	promotion := &entity.Promotion{
		ID:           uuid.New().String(),
		Name:         in.Name,
		ProductID:    in.ProductID,
		DiscountType: in.DiscountType,
		Value:        in.Value,
		StartsAt:     in.StartsAt,
		EndsAt:       in.EndsAt,
		Active:       in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return toPromotionResponse(promotion), nil
}

// GetByID obtiene una promoción por ID.
func (uc *PromotionUseCase) GetByID(ctx context.Context, id string) (*dto.PromotionResponse, error) {
	promotion, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}
	return toPromotionResponse(promotion), nil
}

// Update actualiza una promoción.
func (uc *PromotionUseCase) Update(ctx context.Context, id string, in dto.PromotionRequest) (*dto.PromotionResponse, error) {
	if err := validatePromotion(in); err != nil {
		return nil, err
	}
	promotion, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}
	promotion.Name = in.Name
	promotion.ProductID = in.ProductID
	promotion.DiscountType = in.DiscountType
	promotion.Value = in.Value
	promotion.StartsAt = in.StartsAt
	promotion.EndsAt = in.EndsAt
	promotion.Active = in.Active
	promotion.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return toPromotionResponse(promotion), nil
}

// List lista promociones con paginación.
func (uc *PromotionUseCase) List(ctx context.Context, limit, offset int) ([]dto.PromotionResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PromotionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPromotionResponse(p))
	}
	return items, nil
}

// Delete elimina una promoción por ID.
func (uc *PromotionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validatePromotion(in dto.PromotionRequest) error {
	if in.Name == "" || !in.Value.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.DiscountType != entity.DiscountTypePercent && in.DiscountType != entity.DiscountTypeAmount {
		return domain.ErrInvalidInput
	}
	if in.DiscountType == entity.DiscountTypePercent && in.Value.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	if !in.EndsAt.After(in.StartsAt) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toPromotionResponse(p *entity.Promotion) *dto.PromotionResponse {
	return &dto.PromotionResponse{
		ID:           p.ID,
		Name:         p.Name,
		ProductID:    p.ProductID,
		DiscountType: p.DiscountType,
		Value:        p.Value,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
