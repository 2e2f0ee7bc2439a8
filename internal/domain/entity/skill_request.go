package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

// SkillRequest заявка на обмен навыком между отправителем и владельцем навыка.
type SkillRequest struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	SkillID     uuid.UUID
	Message     string
	Status      valueobject.RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AcceptedAt  *time.Time
	CompletedAt *time.Time

	// Заполняются при чтении для отображения.
	SenderUsername   string
	ReceiverUsername string
	SkillTitle       string
}

// NewSkillRequest получатель всегда владелец навыка на момент создания.
func NewSkillRequest(sender uuid.UUID, skill *Skill, message string) (*SkillRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "сообщение к заявке обязательно")
	}
	if skill.IsOwnedBy(sender) {
		return nil, apperror.ErrSelfRequest
	}

	now := time.Now()
	return &SkillRequest{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: skill.OwnerID,
		SkillID:    skill.ID,
		Message:    message,
		Status:     valueobject.RequestStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		SkillTitle: skill.Title,
	}, nil
}

func (r *SkillRequest) IsParticipant(userID uuid.UUID) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

// Counterpart возвращает второго участника заявки.
func (r *SkillRequest) Counterpart(userID uuid.UUID) uuid.UUID {
	if userID == r.SenderID {
		return r.ReceiverID
	}
	return r.SenderID
}

func (r *SkillRequest) Accept(actor uuid.UUID) error {
	if actor != r.ReceiverID {
		return apperror.New(apperror.ErrCodeForbidden, "принять заявку может только получатель")
	}
	if err := r.moveTo(valueobject.RequestStatusAccepted); err != nil {
		return err
	}
	at := r.UpdatedAt
	r.AcceptedAt = &at
	return nil
}

func (r *SkillRequest) Reject(actor uuid.UUID) error {
	if actor != r.ReceiverID {
		return apperror.New(apperror.ErrCodeForbidden, "отклонить заявку может только получатель")
	}
	return r.moveTo(valueobject.RequestStatusRejected)
}

func (r *SkillRequest) Complete(actor uuid.UUID) error {
	if !r.IsParticipant(actor) {
		return apperror.New(apperror.ErrCodeForbidden, "завершить заявку может только её участник")
	}
	if err := r.moveTo(valueobject.RequestStatusCompleted); err != nil {
		return err
	}
	at := r.UpdatedAt
	r.CompletedAt = &at
	return nil
}

func (r *SkillRequest) Cancel(actor uuid.UUID) error {
	if actor != r.SenderID {
		return apperror.New(apperror.ErrCodeForbidden, "отменить заявку может только отправитель")
	}
	return r.moveTo(valueobject.RequestStatusCancelled)
}

func (r *SkillRequest) moveTo(status valueobject.RequestStatus) error {
	if !r.Status.CanTransitionTo(status) {
		return apperror.ErrInvalidTransition
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

func (r *SkillRequest) IsCompleted() bool {
	return r.Status == valueobject.RequestStatusCompleted
}

// RequestMessage сообщение в переписке по заявке.
type RequestMessage struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	SenderID  uuid.UUID
	Body      string
	IsRead    bool
	CreatedAt time.Time

	SenderUsername string
}

func NewRequestMessage(request *SkillRequest, sender uuid.UUID, body string) (*RequestMessage, error) {
	if !request.IsParticipant(sender) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "писать в переписку могут только участники заявки")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "сообщение не может быть пустым")
	}
	return &RequestMessage{
		ID:        uuid.New(),
		RequestID: request.ID,
		SenderID:  sender,
		Body:      body,
		CreatedAt: time.Now(),
	}, nil
}
