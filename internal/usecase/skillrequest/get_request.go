package skillrequest

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type GetRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
}

func NewGetRequestUseCase(requestRepo repository.SkillRequestRepository) *GetRequestUseCase {
	return &GetRequestUseCase{requestRepo: requestRepo}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) (*entity.SkillRequest, error) {
	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParticipant(actorID) {
		return nil, apperror.ErrForbidden
	}
	return request, nil
}

type RequestLists struct {
	Sent     []*entity.SkillRequest
	Received []*entity.SkillRequest
}

type ListRequestsUseCase struct {
	requestRepo repository.SkillRequestRepository
}

func NewListRequestsUseCase(requestRepo repository.SkillRequestRepository) *ListRequestsUseCase {
	return &ListRequestsUseCase{requestRepo: requestRepo}
}

// Execute status == nil означает все статусы.
func (uc *ListRequestsUseCase) Execute(ctx context.Context, actorID uuid.UUID, status *valueobject.RequestStatus) (*RequestLists, error) {
	sent, err := uc.requestRepo.ListBySender(ctx, actorID, status, 0)
	if err != nil {
		return nil, err
	}
	received, err := uc.requestRepo.ListByReceiver(ctx, actorID, status, 0)
	if err != nil {
		return nil, err
	}
	return &RequestLists{Sent: sent, Received: received}, nil
}
