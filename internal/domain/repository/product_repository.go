package repository

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// StockQuantity solo se actualiza vía UpdateStock dentro de la transacción
// del movimiento correspondiente.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija el saldo denormalizado. Solo usar en la misma tx que el movimiento.
	UpdateStock(ctx context.Context, productID string, quantity int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
