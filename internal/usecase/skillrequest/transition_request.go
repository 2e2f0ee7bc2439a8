package skillrequest

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

// transition проверяет роль и статус на загруженной копии, затем пишет
// новый статус условным обновлением. Если статус успели изменить, то
// обновление не применится и вызов получит INVALID_TRANSITION.
func transition(ctx context.Context, repo repository.SkillRequestRepository, requestID uuid.UUID, apply func(*entity.SkillRequest) error) (*entity.SkillRequest, error) {
	request, err := repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	from := request.Status
	if err := apply(request); err != nil {
		return nil, err
	}

	applied, err := repo.UpdateStatus(ctx, request, from)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.ErrInvalidTransition
	}
	return request, nil
}

type AcceptRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
	notifier    Notifier
}

func NewAcceptRequestUseCase(requestRepo repository.SkillRequestRepository, notifier Notifier) *AcceptRequestUseCase {
	return &AcceptRequestUseCase{requestRepo: requestRepo, notifier: notifier}
}

func (uc *AcceptRequestUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) (*entity.SkillRequest, error) {
	request, err := transition(ctx, uc.requestRepo, requestID, func(r *entity.SkillRequest) error {
		return r.Accept(actorID)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.RequestAccepted(ctx, request)
	return request, nil
}

type RejectRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
	notifier    Notifier
}

func NewRejectRequestUseCase(requestRepo repository.SkillRequestRepository, notifier Notifier) *RejectRequestUseCase {
	return &RejectRequestUseCase{requestRepo: requestRepo, notifier: notifier}
}

func (uc *RejectRequestUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) (*entity.SkillRequest, error) {
	request, err := transition(ctx, uc.requestRepo, requestID, func(r *entity.SkillRequest) error {
		return r.Reject(actorID)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.RequestRejected(ctx, request)
	return request, nil
}

// CompleteResult ReviewUnlocked сигнализирует, что участники могут оставить отзывы.
type CompleteResult struct {
	Request        *entity.SkillRequest
	ReviewUnlocked bool
}

type CompleteRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
}

func NewCompleteRequestUseCase(requestRepo repository.SkillRequestRepository) *CompleteRequestUseCase {
	return &CompleteRequestUseCase{requestRepo: requestRepo}
}

// Execute уведомление не отправляется, его создаёт отзыв.
func (uc *CompleteRequestUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) (*CompleteResult, error) {
	request, err := transition(ctx, uc.requestRepo, requestID, func(r *entity.SkillRequest) error {
		return r.Complete(actorID)
	})
	if err != nil {
		return nil, err
	}
	return &CompleteResult{Request: request, ReviewUnlocked: true}, nil
}

type CancelRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
}

func NewCancelRequestUseCase(requestRepo repository.SkillRequestRepository) *CancelRequestUseCase {
	return &CancelRequestUseCase{requestRepo: requestRepo}
}

func (uc *CancelRequestUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) (*entity.SkillRequest, error) {
	return transition(ctx, uc.requestRepo, requestID, func(r *entity.SkillRequest) error {
		return r.Cancel(actorID)
	})
}
