package skillrequest

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

// Notifier события жизненного цикла заявки.
type Notifier interface {
	RequestCreated(ctx context.Context, req *entity.SkillRequest)
	RequestAccepted(ctx context.Context, req *entity.SkillRequest)
	RequestRejected(ctx context.Context, req *entity.SkillRequest)
}

type CreateRequestInput struct {
	SenderID uuid.UUID
	SkillID  uuid.UUID
	Message  string
}

type CreateRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
	skillRepo   repository.SkillRepository
	notifier    Notifier
}

func NewCreateRequestUseCase(requestRepo repository.SkillRequestRepository, skillRepo repository.SkillRepository, notifier Notifier) *CreateRequestUseCase {
	return &CreateRequestUseCase{
		requestRepo: requestRepo,
		skillRepo:   skillRepo,
		notifier:    notifier,
	}
}

// Execute при наличии активной заявки возвращает DUPLICATE_REQUEST с её ID.
func (uc *CreateRequestUseCase) Execute(ctx context.Context, input CreateRequestInput) (*entity.SkillRequest, error) {
	skill, err := uc.skillRepo.FindByID(ctx, input.SkillID)
	if err != nil {
		return nil, err
	}
	if !skill.IsActive {
		return nil, apperror.ErrSkillNotFound
	}

	request, err := entity.NewSkillRequest(input.SenderID, skill, input.Message)
	if err != nil {
		return nil, err
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.notifier.RequestCreated(ctx, request)
	return request, nil
}
