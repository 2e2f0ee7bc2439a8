package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/valueobject"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      valueobject.NotificationType
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}

func NewNotification(userID uuid.UUID, kind valueobject.NotificationType, title, message, link string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}
}

func (n *Notification) IsOwnedBy(userID uuid.UUID) bool {
	return n.UserID == userID
}
