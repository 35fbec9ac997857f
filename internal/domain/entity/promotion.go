package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento de promoción.
const (
	DiscountTypePercent = "percent" // Value es porcentaje: 10 = 10%
	DiscountTypeAmount  = "amount"  // Value es monto fijo por unidad
)

// Promotion define un descuento vigente en una ventana de fechas.
// ProductID vacío aplica a todo el catálogo.
type Promotion struct {
	ID           string
	Name         string
	ProductID    string
	DiscountType string // percent | amount
	Value        decimal.Decimal
	StartsAt     time.Time
	EndsAt       time.Time
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppliesTo indica si la promoción está vigente para el producto en el instante dado.
func (p *Promotion) AppliesTo(productID string, at time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ProductID != "" && p.ProductID != productID {
		return false
	}
	return !at.Before(p.StartsAt) && !at.After(p.EndsAt)
}

// DiscountFor calcula el descuento para una línea (qty unidades a unitPrice),
// redondeado a 2 decimales. Nunca excede el subtotal de la línea.
func (p *Promotion) DiscountFor(qty int64, unitPrice decimal.Decimal) decimal.Decimal {
	lineSubtotal := unitPrice.Mul(decimal.NewFromInt(qty))
	var discount decimal.Decimal
	switch p.DiscountType {
	case DiscountTypePercent:
		discount = lineSubtotal.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeAmount:
		discount = p.Value.Mul(decimal.NewFromInt(qty)).Round(2)
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(lineSubtotal) {
		return lineSubtotal
	}
	return discount
}
