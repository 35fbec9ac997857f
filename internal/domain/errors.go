package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrSessionNotFound      = errors.New("sesión de caja no encontrada")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrSessionAlreadyActive = errors.New("el usuario ya tiene una sesión de caja activa")
	ErrSessionNotActive     = errors.New("la sesión de caja no está activa")
	ErrSessionAlreadyClosed = errors.New("la sesión de caja ya fue cerrada")
)
