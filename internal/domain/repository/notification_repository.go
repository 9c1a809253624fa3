package repository

import (
	"context"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/utils"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	CreateMany(ctx context.Context, notifications []*entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, pagination *utils.Pagination) ([]*entity.Notification, int64, error)
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}
