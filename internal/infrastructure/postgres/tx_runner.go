package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/application/sales"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ caisse.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	notifRepo := NewNotificationRepository(tx)

	if err := fn(movRepo, productRepo, notifRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCaisse inicia una transacción con los repos de caja (sesiones y asientos).
func (r *TxRunner) RunCaisse(ctx context.Context, fn func(
	sessionRepo repository.CaisseSessionRepository,
	movRepo repository.CaisseMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sessionRepo := NewCaisseSessionRepository(tx)
	movRepo := NewCaisseMovementRepository(tx)

	if err := fn(sessionRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con todos los repos que toca una venta
// (venta, libro de stock, productos, notificaciones, caja).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	sessionRepo repository.CaisseSessionRepository,
	caisseMovRepo repository.CaisseMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	notifRepo := NewNotificationRepository(tx)
	sessionRepo := NewCaisseSessionRepository(tx)
	caisseMovRepo := NewCaisseMovementRepository(tx)

	if err := fn(saleRepo, movRepo, productRepo, notifRepo, sessionRepo, caisseMovRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
