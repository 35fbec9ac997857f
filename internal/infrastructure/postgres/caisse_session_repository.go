package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

var _ repository.CaisseSessionRepository = (*CaisseSessionRepo)(nil)

const caisseSessionColumns = `id, user_id, opening_amount, current_amount, closing_amount, expected_amount, difference, status, notes, opened_at, closed_at`

// CaisseSessionRepo implementación sobre PostgreSQL (usable con pool o tx).
type CaisseSessionRepo struct {
	q Querier
}

// NewCaisseSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCaisseSessionRepository(q Querier) *CaisseSessionRepo {
	return &CaisseSessionRepo{q: q}
}

// Create persiste una sesión nueva. El índice único parcial sobre
// (user_id) WHERE status = 'active' devuelve ErrDuplicate si el usuario
// ya tiene una sesión activa (carrera entre dos Open simultáneos).
func (r *CaisseSessionRepo) Create(ctx context.Context, session *entity.CaisseSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	query := `
		INSERT INTO caisse_sessions (` + caisseSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		session.ID, session.UserID, session.OpeningAmount, session.CurrentAmount,
		session.ClosingAmount, session.ExpectedAmount, session.Difference,
		session.Status, nullable(session.Notes), session.OpenedAt, session.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create caisse session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *CaisseSessionRepo) GetByID(ctx context.Context, id string) (*entity.CaisseSession, error) {
	query := `SELECT ` + caisseSessionColumns + ` FROM caisse_sessions WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate bloquea la fila de la sesión hasta el fin de la transacción.
func (r *CaisseSessionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CaisseSession, error) {
	query := `SELECT ` + caisseSessionColumns + ` FROM caisse_sessions WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetActiveByUser devuelve la sesión activa del usuario o nil si no hay.
func (r *CaisseSessionRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.CaisseSession, error) {
	query := `SELECT ` + caisseSessionColumns + ` FROM caisse_sessions WHERE user_id = $1 AND status = 'active'`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// Update persiste el estado completo de la sesión.
func (r *CaisseSessionRepo) Update(ctx context.Context, session *entity.CaisseSession) error {
	query := `
		UPDATE caisse_sessions
		SET current_amount = $2, closing_amount = $3, expected_amount = $4,
		    difference = $5, status = $6, notes = $7, closed_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		session.ID, session.CurrentAmount, session.ClosingAmount,
		session.ExpectedAmount, session.Difference, session.Status,
		nullable(session.Notes), session.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update caisse session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// ListByUser lista sesiones de un usuario, más recientes primero.
func (r *CaisseSessionRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CaisseSession, error) {
	query := `SELECT ` + caisseSessionColumns + ` FROM caisse_sessions
		WHERE user_id = $1 ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions by user: %w", err)
	}
	defer rows.Close()
	var list []*entity.CaisseSession
	for rows.Next() {
		s, err := scanCaisseSession(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *CaisseSessionRepo) scanOne(row pgx.Row) (*entity.CaisseSession, error) {
	s, err := scanCaisseSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func scanCaisseSession(row pgx.Row) (*entity.CaisseSession, error) {
	var s entity.CaisseSession
	var notes *string
	err := row.Scan(
		&s.ID, &s.UserID, &s.OpeningAmount, &s.CurrentAmount,
		&s.ClosingAmount, &s.ExpectedAmount, &s.Difference,
		&s.Status, &notes, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan caisse session: %w", err)
	}
	s.Notes = deref(notes)
	return &s, nil
}
