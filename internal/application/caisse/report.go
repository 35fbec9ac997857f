package caisse

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// ReportGenerator es el puerto hacia el generador del reporte Z de cierre.
type ReportGenerator interface {
	GenerateSessionReport(ctx context.Context, session *entity.CaisseSession, movements []*entity.CaisseMovement, operatorName string) ([]byte, error)
}

// ReportUseCase arma el reporte Z de una sesión: sesión + asientos + operador.
type ReportUseCase struct {
	sessionRepo repository.CaisseSessionRepository
	movRepo     repository.CaisseMovementRepository
	userRepo    repository.UserRepository
	generator   ReportGenerator
}

// NewReportUseCase construye el caso de uso del reporte.
func NewReportUseCase(
	sessionRepo repository.CaisseSessionRepository,
	movRepo repository.CaisseMovementRepository,
	userRepo repository.UserRepository,
	generator ReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		sessionRepo: sessionRepo,
		movRepo:     movRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

const maxReportMovements = 1000

// SessionReport genera el PDF del reporte de la sesión. Funciona para
// sesiones activas (arqueo parcial) y cerradas (reporte Z definitivo).
func (uc *ReportUseCase) SessionReport(ctx context.Context, sessionID string) ([]byte, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	movements, err := uc.movRepo.ListBySession(ctx, sessionID, maxReportMovements, 0)
	if err != nil {
		return nil, err
	}
	operatorName := session.UserID
	if user, err := uc.userRepo.GetByID(ctx, session.UserID); err == nil && user != nil {
		operatorName = user.Name
	}
	return uc.generator.GenerateSessionReport(ctx, session, movements, operatorName)
}
