package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	SessionStatusActive = "active"
	SessionStatusClosed = "closed"
)

// Tipos de movimiento de caja.
const (
	CaisseMovementSale       = "sale"       // venta en efectivo
	CaisseMovementDeposit    = "deposit"    // ingreso manual
	CaisseMovementWithdrawal = "withdrawal" // egreso manual
)

// CaisseSession representa el ciclo de vida de una sesión de caja de un operador.
// Exactamente una sesión activa por usuario; CurrentAmount muta con cada venta en
// efectivo mientras está activa y queda inmutable al cerrar.
// Ciclo: NONE -> ACTIVE -> CLOSED (terminal; una nueva sesión es otra entidad).
type CaisseSession struct {
	ID             string
	UserID         string
	OpeningAmount  decimal.Decimal
	CurrentAmount  decimal.Decimal
	ClosingAmount  *decimal.Decimal // monto contado por el operador al cerrar
	ExpectedAmount *decimal.Decimal // CurrentAmount al momento del cierre
	Difference     *decimal.Decimal // ClosingAmount - ExpectedAmount
	Status         string           // active | closed
	Notes          string
	OpenedAt       time.Time
	ClosedAt       *time.Time
}

// CaisseMovement es un registro inmutable del libro de movimientos de caja.
// Los movimientos nunca se modifican ni se borran; las anulaciones crean
// asientos inversos.
type CaisseMovement struct {
	ID        string
	SessionID string
	Type      string          // sale | deposit | withdrawal
	Amount    decimal.Decimal // con signo: positivo entra a caja, negativo sale
	Reference string          // número de venta u operación manual
	Notes     string
	CreatedAt time.Time
}
