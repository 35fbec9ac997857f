package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// StockQuantity es el saldo denormalizado: solo lo muta el motor de movimientos
// (misma transacción que el insert en stock_movements), nunca un update directo.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Description   string
	CategoryID    string
	SupplierID    string
	Price         decimal.Decimal // precio de venta
	TaxRate       decimal.Decimal // fracción: 0, 0.05, 0.19
	StockQuantity int64           // saldo actual; siempre >= 0
	ReorderPoint  int64           // umbral para notificación de stock bajo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
