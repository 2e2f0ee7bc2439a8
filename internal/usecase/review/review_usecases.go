package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
)

const defaultListLimit = 50

type Notifier interface {
	ReviewSubmitted(ctx context.Context, review *entity.Review)
}

type Sanitizer interface {
	SanitizeString(s string) string
}

type SubmitReviewInput struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Ratings    entity.ReviewRatings
	Comment    string
}

type SubmitReviewUseCase struct {
	requestRepo repository.SkillRequestRepository
	reviewRepo  repository.ReviewRepository
	sanitizer   Sanitizer
	notifier    Notifier
}

func NewSubmitReviewUseCase(requestRepo repository.SkillRequestRepository, reviewRepo repository.ReviewRepository, sanitizer Sanitizer, notifier Notifier) *SubmitReviewUseCase {
	return &SubmitReviewUseCase{
		requestRepo: requestRepo,
		reviewRepo:  reviewRepo,
		sanitizer:   sanitizer,
		notifier:    notifier,
	}
}

// Execute проверки идут по порядку: заявка, статус, участник, оценки, повтор.
// Повторный отзыв того же автора отклоняется внутри вставки, а не предварительной проверкой.
func (uc *SubmitReviewUseCase) Execute(ctx context.Context, input SubmitReviewInput) (*entity.Review, error) {
	request, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	review, err := entity.NewReview(request, input.ReviewerID, input.Ratings, uc.sanitizer.SanitizeString(input.Comment))
	if err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.notifier.ReviewSubmitted(ctx, review)
	return review, nil
}

type CanReviewUseCase struct {
	requestRepo repository.SkillRequestRepository
	reviewRepo  repository.ReviewRepository
}

func NewCanReviewUseCase(requestRepo repository.SkillRequestRepository, reviewRepo repository.ReviewRepository) *CanReviewUseCase {
	return &CanReviewUseCase{requestRepo: requestRepo, reviewRepo: reviewRepo}
}

func (uc *CanReviewUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID) (bool, error) {
	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return false, err
	}
	if !request.IsCompleted() || !request.IsParticipant(actorID) {
		return false, nil
	}
	exists, err := uc.reviewRepo.ExistsForRequest(ctx, actorID, requestID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// RatingSummary сводка оценок пользователя для профиля и дашборда.
type RatingSummary struct {
	Average   float64
	Total     int
	Breakdown map[int]int
}

func newRatingSummary(stats valueobject.RatingStats) *RatingSummary {
	breakdown := make(map[int]int, valueobject.MaxRating)
	for stars := valueobject.MinRating; stars <= valueobject.MaxRating; stars++ {
		breakdown[stars] = stats.StarCount(stars)
	}
	return &RatingSummary{
		Average:   stats.Average(),
		Total:     stats.Count,
		Breakdown: breakdown,
	}
}

type AverageRatingUseCase struct {
	reviewRepo repository.ReviewRepository
}

func NewAverageRatingUseCase(reviewRepo repository.ReviewRepository) *AverageRatingUseCase {
	return &AverageRatingUseCase{reviewRepo: reviewRepo}
}

// ForUser среднее по отзывам, где пользователь оценён, 0 без отзывов.
func (uc *AverageRatingUseCase) ForUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	stats, err := uc.reviewRepo.StatsForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return stats.Average(), nil
}

func (uc *AverageRatingUseCase) ForSkill(ctx context.Context, skillID uuid.UUID) (float64, error) {
	stats, err := uc.reviewRepo.StatsForSkill(ctx, skillID)
	if err != nil {
		return 0, err
	}
	return stats.Average(), nil
}

func (uc *AverageRatingUseCase) Summary(ctx context.Context, userID uuid.UUID) (*RatingSummary, error) {
	stats, err := uc.reviewRepo.StatsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newRatingSummary(stats), nil
}

type ListReviewsUseCase struct {
	reviewRepo repository.ReviewRepository
}

func NewListReviewsUseCase(reviewRepo repository.ReviewRepository) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewRepo: reviewRepo}
}

func (uc *ListReviewsUseCase) ForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return uc.reviewRepo.ListByReviewedUser(ctx, userID, defaultListLimit)
}

func (uc *ListReviewsUseCase) ForSkill(ctx context.Context, skillID uuid.UUID) ([]*entity.Review, error) {
	return uc.reviewRepo.ListBySkill(ctx, skillID, defaultListLimit)
}
