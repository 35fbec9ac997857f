package caisse

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de caja atados a esa tx. La mutación de current_amount y el
// asiento en caisse_movements comparten siempre la misma transacción.
type TxRunner interface {
	RunCaisse(ctx context.Context, fn func(
		sessionRepo repository.CaisseSessionRepository,
		movRepo repository.CaisseMovementRepository,
	) error) error
}
