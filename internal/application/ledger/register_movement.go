package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (in, out, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada movimiento guarda el saldo anterior y el nuevo; el saldo denormalizado en
// products.stock_quantity se actualiza en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// Quantity debe ser positiva para in/out; para adjustment lleva signo.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int64
	Reference string
	Notes     string
	UserID    string
}

// RegisterMovement inicia una transacción, bloquea la fila del producto,
// aplica la lógica según tipo y hace Commit o Rollback.
// Una salida que dejaría el saldo negativo se rechaza con ErrInsufficientStock
// sin escribir nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Validar que el producto exista (solo lectura, fuera de la tx)
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	var movement *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error {
		var txErr error
		movement, txErr = uc.RegisterInTx(ctx, movRepo, productRepo, notifRepo, input, time.Now())
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// RegisterInTx ejecuta el movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usa PostSale para descontar stock dentro
// de la transacción de la venta.
func (uc *RegisterMovementUseCase) RegisterInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto (SELECT FOR UPDATE) para evitar que dos
	// salidas concurrentes pasen ambas la verificación de stock
	product, err := productRepo.GetByIDForUpdate(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	previous := product.StockQuantity
	var next int64
	switch input.Type {
	case entity.MovementTypeIn:
		next = previous + input.Quantity
	case entity.MovementTypeOut:
		if previous < input.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		next = previous - input.Quantity
	case entity.MovementTypeAdjustment:
		next = previous + input.Quantity
		if next < 0 {
			return nil, domain.ErrInsufficientStock
		}
	}

	// Saldo denormalizado y movimiento inmutable en la misma transacción
	if err := productRepo.UpdateStock(ctx, input.ProductID, next); err != nil {
		return nil, err
	}
	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reference:     input.Reference,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	// Notificación de stock bajo al cruzar el punto de reorden hacia abajo
	if product.ReorderPoint > 0 && next <= product.ReorderPoint && previous > product.ReorderPoint {
		notif := &entity.Notification{
			ID:        uuid.New().String(),
			Type:      entity.NotificationLowStock,
			Title:     "Stock bajo",
			Message:   fmt.Sprintf("%s quedó en %d unidades (punto de reorden: %d)", product.Name, next, product.ReorderPoint),
			ProductID: product.ID,
			CreatedAt: now,
		}
		if err := notifRepo.Create(ctx, notif); err != nil {
			return nil, err
		}
	}
	return movement, nil
}

// RegisterOutInTx descuenta stock por una venta dentro de la transacción del caller.
// reference suele ser el número de venta.
func (uc *RegisterMovementUseCase) RegisterOutInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
	productID string,
	quantity int64,
	reference, userID string,
	now time.Time,
) (*entity.StockMovement, error) {
	return uc.RegisterInTx(ctx, movRepo, productRepo, notifRepo, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeOut,
		Quantity:  quantity,
		Reference: reference,
		UserID:    userID,
	}, now)
}

func validateInput(input MovementInput) error {
	if input.ProductID == "" {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity == 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
