package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
)

type NotificationFilter struct {
	IsRead *bool
	Limit  int
	Offset int
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	List(ctx context.Context, userID uuid.UUID, filter NotificationFilter) ([]*entity.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
