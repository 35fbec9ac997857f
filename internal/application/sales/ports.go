package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con todos los
// repositorios que toca una venta. Si la función retorna error, nada queda
// visible: ni la venta, ni los movimientos de stock, ni el delta de caja.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		sessionRepo repository.CaisseSessionRepository,
		caisseMovRepo repository.CaisseMovementRepository,
	) error) error
}

// StockLedger es el puerto hacia el motor de movimientos de stock,
// implementado por ledger.RegisterMovementUseCase.
type StockLedger interface {
	RegisterOutInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		productID string,
		quantity int64,
		reference, userID string,
		now time.Time,
	) (*entity.StockMovement, error)
}

// CashRegister es el puerto hacia la sesión de caja,
// implementado por caisse.SessionUseCase.
type CashRegister interface {
	ApplyCashDeltaInTx(
		ctx context.Context,
		sessionRepo repository.CaisseSessionRepository,
		movRepo repository.CaisseMovementRepository,
		sessionID string,
		amount decimal.Decimal,
		movType, reference, notes string,
		now time.Time,
	) (*entity.CaisseSession, error)
}

// Cache es el puerto hacia el cache de lecturas (Redis). Las implementaciones
// deben tolerar fallos del backend devolviendo miss, nunca propagando el error
// al flujo de la venta.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
