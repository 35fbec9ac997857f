package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionRequest body para crear/actualizar una promoción.
// ProductID vacío aplica a todo el catálogo.
type PromotionRequest struct {
	Name         string          `json:"name"`
	ProductID    string          `json:"product_id,omitempty"`
	DiscountType string          `json:"discount_type"` // percent | amount
	Value        decimal.Decimal `json:"value"`
	StartsAt     time.Time       `json:"starts_at"`
	EndsAt       time.Time       `json:"ends_at"`
	Active       bool            `json:"active"`
}

// PromotionResponse representación de una promoción.
type PromotionResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ProductID    string          `json:"product_id,omitempty"`
	DiscountType string          `json:"discount_type"`
	Value        decimal.Decimal `json:"value"`
	StartsAt     time.Time       `json:"starts_at"`
	EndsAt       time.Time       `json:"ends_at"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
