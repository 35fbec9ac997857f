package usecase

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// NotificationUseCase lecturas y marcado de notificaciones.
// Las crea el motor de movimientos (stock bajo), no este caso de uso.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List lista notificaciones, opcionalmente solo las no leídas.
func (uc *NotificationUseCase) List(ctx context.Context, onlyUnread bool, limit, offset int) ([]dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.repo.List(ctx, onlyUnread, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationResponse(n))
	}
	return items, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(ctx, id)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		ProductID: n.ProductID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
