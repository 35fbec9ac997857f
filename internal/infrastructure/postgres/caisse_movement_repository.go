package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

var _ repository.CaisseMovementRepository = (*CaisseMovementRepo)(nil)

// CaisseMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El libro de caja es inmutable: solo INSERT y SELECT.
type CaisseMovementRepo struct {
	q Querier
}

// NewCaisseMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCaisseMovementRepository(q Querier) *CaisseMovementRepo {
	return &CaisseMovementRepo{q: q}
}

// Create persiste un asiento de caja.
func (r *CaisseMovementRepo) Create(ctx context.Context, movement *entity.CaisseMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO caisse_movements (id, session_id, type, amount, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.SessionID, movement.Type, movement.Amount,
		nullable(movement.Reference), nullable(movement.Notes), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create caisse movement: %w", err)
	}
	return nil
}

// ListBySession lista los asientos de una sesión en orden cronológico.
func (r *CaisseMovementRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]*entity.CaisseMovement, error) {
	query := `
		SELECT id, session_id, type, amount, reference, notes, created_at
		FROM caisse_movements WHERE session_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list caisse movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CaisseMovement
	for rows.Next() {
		var m entity.CaisseMovement
		var reference, notes *string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Amount, &reference, &notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan caisse movement: %w", err)
		}
		m.Reference = deref(reference)
		m.Notes = deref(notes)
		list = append(list, &m)
	}
	return list, rows.Err()
}
