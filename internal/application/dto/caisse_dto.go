package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenSessionRequest body para POST /api/caisse/sessions.
type OpenSessionRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CloseSessionRequest body para POST /api/caisse/sessions/:id/close.
// CountedAmount es el efectivo contado por el operador en el arqueo.
type CloseSessionRequest struct {
	CountedAmount decimal.Decimal `json:"counted_amount"`
	Notes         string          `json:"notes,omitempty"`
}

// CashMovementRequest body para POST /api/caisse/sessions/:id/movements
// (ingreso o egreso manual de efectivo).
type CashMovementRequest struct {
	Type      string          `json:"type"` // deposit | withdrawal
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// SessionResponse representación de una sesión de caja en la API.
type SessionResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	CurrentAmount  decimal.Decimal  `json:"current_amount"`
	ClosingAmount  *decimal.Decimal `json:"closing_amount,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expected_amount,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	Status         string           `json:"status"`
	Notes          string           `json:"notes,omitempty"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
}

// CaisseMovementResponse representación de un movimiento de caja.
type CaisseMovementResponse struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
