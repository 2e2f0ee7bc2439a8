package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
)

type SkillRequestRepository interface {
	// Create вставляет заявку, только если у отправителя нет активной заявки на этот навык.
	// Иначе возвращает apperror с кодом DUPLICATE_REQUEST и ID существующей заявки.
	Create(ctx context.Context, request *entity.SkillRequest) error
	// UpdateStatus атомарно переводит заявку, если её текущий статус равен from.
	// Возвращает false, если строка не изменилась.
	UpdateStatus(ctx context.Context, request *entity.SkillRequest, from valueobject.RequestStatus) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillRequest, error)
	FindActive(ctx context.Context, senderID, skillID uuid.UUID) (*entity.SkillRequest, error)
	ListBySender(ctx context.Context, senderID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID, status *valueobject.RequestStatus, limit int) ([]*entity.SkillRequest, error)
	CountByStatusForSender(ctx context.Context, senderID uuid.UUID) (map[valueobject.RequestStatus]int, error)
	CountForReceiver(ctx context.Context, receiverID uuid.UUID) (int, error)
}

type RequestMessageRepository interface {
	Create(ctx context.Context, message *entity.RequestMessage) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.RequestMessage, error)
	// MarkIncomingRead помечает прочитанными сообщения собеседника reader в переписке.
	MarkIncomingRead(ctx context.Context, requestID, readerID uuid.UUID) (int64, error)
	CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error)
}
