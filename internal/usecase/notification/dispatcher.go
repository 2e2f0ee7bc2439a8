package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/logger"
)

// EventNotification тип WebSocket события с новым уведомлением.
const EventNotification = "notification"

// Pusher доставляет событие в открытые WebSocket соединения пользователя.
type Pusher interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// Dispatcher создаёт ровно одно уведомление на каждое событие и адресует его
// второму участнику, а не автору действия. Ошибки только логируются:
// основная операция уже выполнена и не откатывается.
type Dispatcher struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	skills        repository.SkillRepository
	pusher        Pusher
}

func NewDispatcher(notifications repository.NotificationRepository, users repository.UserRepository, skills repository.SkillRepository, pusher Pusher) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		users:         users,
		skills:        skills,
		pusher:        pusher,
	}
}

func (d *Dispatcher) RequestCreated(ctx context.Context, req *entity.SkillRequest) {
	d.dispatch(ctx, req.ReceiverID, valueobject.NotificationRequestReceived,
		"Новая заявка",
		fmt.Sprintf("%s хочет изучить «%s»", d.username(ctx, req.SenderID), d.skillTitle(ctx, req)),
		requestLink(req.ID),
	)
}

func (d *Dispatcher) RequestAccepted(ctx context.Context, req *entity.SkillRequest) {
	d.dispatch(ctx, req.SenderID, valueobject.NotificationRequestAccepted,
		"Заявка принята",
		fmt.Sprintf("%s принял(а) вашу заявку на «%s»", d.username(ctx, req.ReceiverID), d.skillTitle(ctx, req)),
		requestLink(req.ID),
	)
}

func (d *Dispatcher) RequestRejected(ctx context.Context, req *entity.SkillRequest) {
	d.dispatch(ctx, req.SenderID, valueobject.NotificationRequestRejected,
		"Заявка отклонена",
		fmt.Sprintf("%s отклонил(а) вашу заявку на «%s»", d.username(ctx, req.ReceiverID), d.skillTitle(ctx, req)),
		requestLink(req.ID),
	)
}

func (d *Dispatcher) MessagePosted(ctx context.Context, req *entity.SkillRequest, msg *entity.RequestMessage) {
	d.dispatch(ctx, req.Counterpart(msg.SenderID), valueobject.NotificationNewMessage,
		"Новое сообщение",
		fmt.Sprintf("%s отправил(а) вам сообщение", d.username(ctx, msg.SenderID)),
		requestLink(req.ID),
	)
}

func (d *Dispatcher) ReviewSubmitted(ctx context.Context, review *entity.Review) {
	d.dispatch(ctx, review.ReviewedUserID, valueobject.NotificationNewReview,
		"Новый отзыв",
		fmt.Sprintf("%s оставил(а) вам отзыв: %d из 5", d.username(ctx, review.ReviewerID), review.Rating.Int()),
		"/users/"+d.username(ctx, review.ReviewedUserID),
	)
}

func (d *Dispatcher) dispatch(ctx context.Context, recipient uuid.UUID, kind valueobject.NotificationType, title, message, link string) {
	n := entity.NewNotification(recipient, kind, title, message, link)

	if err := d.notifications.Create(ctx, n); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": recipient,
			"type":    kind,
			"error":   err.Error(),
		}).Error("notification: не удалось сохранить уведомление")
		return
	}

	if d.pusher == nil {
		return
	}
	if err := d.pusher.BroadcastToUser(recipient, EventNotification, newPushPayload(n)); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id":         recipient,
			"notification_id": n.ID,
			"error":           err.Error(),
		}).Warn("notification: не удалось отправить уведомление в websocket")
	}
}

func (d *Dispatcher) username(ctx context.Context, userID uuid.UUID) string {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).
			Debug("notification: имя пользователя недоступно")
		return "Пользователь"
	}
	return u.Username
}

func (d *Dispatcher) skillTitle(ctx context.Context, req *entity.SkillRequest) string {
	if req.SkillTitle != "" {
		return req.SkillTitle
	}
	skill, err := d.skills.FindByID(ctx, req.SkillID)
	if err != nil {
		return "навык"
	}
	return skill.Title
}

func requestLink(id uuid.UUID) string {
	return "/requests/" + id.String()
}

type pushPayload struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

func newPushPayload(n *entity.Notification) pushPayload {
	return pushPayload{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}
}
