package repository

import (
	"context"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
