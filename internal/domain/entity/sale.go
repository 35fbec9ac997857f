package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago soportados.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Sale representa una venta confirmada. Inmutable después de crearse:
// no se edita, solo se corrige con movimientos posteriores.
// Subtotal excluye impuestos; TotalAmount = Subtotal - DiscountAmount + TaxAmount.
type Sale struct {
	ID              string
	SaleNumber      string // único, ordenado en el tiempo
	CustomerID      string // opcional (venta de mostrador)
	CashierID       string
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentMethod   string
	CaisseSessionID string // opcional: vacío para ventas fuera de sesión
	CreatedAt       time.Time
	Items           []SaleItem
}

// SaleItem es una línea de venta.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	Quantity       int64
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalPrice     decimal.Decimal // qty*unit_price - discount + impuesto de la línea
}
