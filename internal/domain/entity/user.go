package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User representa un operador del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin | manager | cashier
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
