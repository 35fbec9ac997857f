package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// El stock inicial se carga con un movimiento de entrada, no aquí.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	ReorderPoint int64           `json:"reorder_point,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
// StockQuantity no es editable: se maneja vía movimientos.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	TaxRate      *decimal.Decimal `json:"tax_rate,omitempty"`
	ReorderPoint *int64           `json:"reorder_point,omitempty"`
}

// ProductResponse representación de un producto en la API.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	StockQuantity int64           `json:"stock_quantity"`
	ReorderPoint  int64           `json:"reorder_point"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
