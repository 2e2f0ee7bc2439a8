package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	recentCount     = 5
)

// Inbox операции пользователя над собственными уведомлениями.
type Inbox struct {
	repo repository.NotificationRepository
}

func NewInbox(repo repository.NotificationRepository) *Inbox {
	return &Inbox{repo: repo}
}

func (s *Inbox) List(ctx context.Context, userID uuid.UUID, filter valueobject.NotificationReadFilter, limit, offset int) ([]*entity.Notification, int, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, userID, repository.NotificationFilter{
		IsRead: filter.ReadFlag(),
		Limit:  limit,
		Offset: offset,
	})
}

// Recent последние уведомления для выпадающего списка.
func (s *Inbox) Recent(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	items, _, err := s.repo.List(ctx, userID, repository.NotificationFilter{Limit: recentCount})
	return items, err
}

func (s *Inbox) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkAsRead повторный вызов для прочитанного уведомления не ошибка.
func (s *Inbox) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, id)
}

func (s *Inbox) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Inbox) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Inbox) owned(ctx context.Context, id, userID uuid.UUID) (*entity.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsOwnedBy(userID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "у вас нет прав на это уведомление")
	}
	return n, nil
}
