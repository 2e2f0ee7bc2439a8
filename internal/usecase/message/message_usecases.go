package message

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type Notifier interface {
	MessagePosted(ctx context.Context, req *entity.SkillRequest, msg *entity.RequestMessage)
}

// Sanitizer очищает пользовательский текст от HTML.
type Sanitizer interface {
	SanitizeString(s string) string
}

type PostMessageUseCase struct {
	requestRepo repository.SkillRequestRepository
	msgRepo     repository.RequestMessageRepository
	sanitizer   Sanitizer
	notifier    Notifier
}

func NewPostMessageUseCase(requestRepo repository.SkillRequestRepository, msgRepo repository.RequestMessageRepository, sanitizer Sanitizer, notifier Notifier) *PostMessageUseCase {
	return &PostMessageUseCase{
		requestRepo: requestRepo,
		msgRepo:     msgRepo,
		sanitizer:   sanitizer,
		notifier:    notifier,
	}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID, body string) (*entity.RequestMessage, error) {
	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	msg, err := entity.NewRequestMessage(request, actorID, uc.sanitizer.SanitizeString(body))
	if err != nil {
		return nil, err
	}

	if err := uc.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	uc.notifier.MessagePosted(ctx, request, msg)
	return msg, nil
}

type ListMessagesUseCase struct {
	requestRepo repository.SkillRequestRepository
	msgRepo     repository.RequestMessageRepository
}

func NewListMessagesUseCase(requestRepo repository.SkillRequestRepository, msgRepo repository.RequestMessageRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{requestRepo: requestRepo, msgRepo: msgRepo}
}

// Authorize пропускает только участников заявки.
func (uc *ListMessagesUseCase) Authorize(ctx context.Context, requestID, actorID uuid.UUID) error {
	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !request.IsParticipant(actorID) {
		return apperror.ErrForbidden
	}
	return nil
}

// Execute сообщения в хронологическом порядке.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) ([]*entity.RequestMessage, error) {
	if err := uc.Authorize(ctx, requestID, actorID); err != nil {
		return nil, err
	}
	return uc.msgRepo.ListByRequest(ctx, requestID)
}

type MarkIncomingReadUseCase struct {
	msgRepo repository.RequestMessageRepository
}

func NewMarkIncomingReadUseCase(msgRepo repository.RequestMessageRepository) *MarkIncomingReadUseCase {
	return &MarkIncomingReadUseCase{msgRepo: msgRepo}
}

// Execute ошибок не возвращает: для постороннего пользователя это пустая операция,
// а сбой хранилища только логируется.
func (uc *MarkIncomingReadUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) int64 {
	n, err := uc.msgRepo.MarkIncomingRead(ctx, requestID, actorID)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    actorID,
			"error":      err.Error(),
		}).Warn("message: не удалось отметить сообщения прочитанными")
		return 0
	}
	return n
}

type CountUnreadUseCase struct {
	msgRepo repository.RequestMessageRepository
}

func NewCountUnreadUseCase(msgRepo repository.RequestMessageRepository) *CountUnreadUseCase {
	return &CountUnreadUseCase{msgRepo: msgRepo}
}

func (uc *CountUnreadUseCase) Execute(ctx context.Context, actorID uuid.UUID) (int, error) {
	return uc.msgRepo.CountUnreadForUser(ctx, actorID)
}
