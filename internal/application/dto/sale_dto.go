package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en PostSaleRequest.
// UnitPrice en cero usa el precio actual del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// PostSaleRequest body para POST /api/sales.
type PostSaleRequest struct {
	Items           []SaleItemRequest `json:"items"`
	PaymentMethod   string            `json:"payment_method"` // cash | card | transfer
	CustomerID      string            `json:"customer_id,omitempty"`
	CaisseSessionID string            `json:"caisse_session_id,omitempty"`
}

// SaleItemResponse línea de venta en la API.
type SaleItemResponse struct {
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// SaleResponse representación de una venta en la API.
type SaleResponse struct {
	ID              string             `json:"id"`
	SaleNumber      string             `json:"sale_number"`
	CustomerID      string             `json:"customer_id,omitempty"`
	CashierID       string             `json:"cashier_id"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	TaxAmount       decimal.Decimal    `json:"tax_amount"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaymentMethod   string             `json:"payment_method"`
	CaisseSessionID string             `json:"caisse_session_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DailySummaryMethod totales de un método de pago en el resumen diario.
type DailySummaryMethod struct {
	PaymentMethod string          `json:"payment_method"`
	SalesCount    int64           `json:"sales_count"`
	Total         decimal.Decimal `json:"total"`
}

// DailySummaryResponse resumen de ventas del día.
type DailySummaryResponse struct {
	Date       string               `json:"date"` // YYYY-MM-DD
	SalesCount int64                `json:"sales_count"`
	Total      decimal.Decimal      `json:"total"`
	ByMethod   []DailySummaryMethod `json:"by_method"`
}
