package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock = "low_stock"
)

// Notification es un aviso interno (ej. stock bajo el punto de reorden).
type Notification struct {
	ID        string
	Type      string
	Title     string
	Message   string
	ProductID string // opcional: producto relacionado
	Read      bool
	CreatedAt time.Time
}
