package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity debe ser positiva para in/out; con signo para adjustment.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // in, out, adjustment
	Quantity  int64  `json:"quantity"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// MovementResponse representación de un movimiento de stock en la API.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	PreviousStock int64     `json:"previous_stock"`
	NewStock      int64     `json:"new_stock"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementHistoryResponse historial paginado de movimientos de un producto.
type MovementHistoryResponse struct {
	ProductID string             `json:"product_id"`
	Total     int64              `json:"total"`
	Items     []MovementResponse `json:"items"`
	Page      PageResponse       `json:"page"`
}

// StockResponse saldo actual de un producto.
type StockResponse struct {
	ProductID     string `json:"product_id"`
	StockQuantity int64  `json:"stock_quantity"`
}
