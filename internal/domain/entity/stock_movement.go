package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste (cantidad con signo)
)

// StockMovement es un registro inmutable del libro de movimientos de stock.
// Nunca se actualiza ni se borra; las correcciones se hacen con movimientos inversos.
// Invariante: NewStock == PreviousStock + Quantity (in/adjustment)
// o PreviousStock - Quantity (out), y NewStock >= 0 siempre.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // in, out, adjustment
	Quantity      int64  // positiva para in/out; con signo para adjustment
	PreviousStock int64
	NewStock      int64
	Reference     string // número de venta, orden de compra, nota de ajuste
	Notes         string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}
