package ledger

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de movimientos:
// el insert del movimiento y la actualización del saldo denormalizado comparten
// la misma transacción, nunca son operaciones independientes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
