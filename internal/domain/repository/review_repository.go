package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
)

type ReviewRepository interface {
	// Create возвращает apperror.ErrDuplicateReview, если автор уже оценил эту заявку.
	Create(ctx context.Context, review *entity.Review) error
	ExistsForRequest(ctx context.Context, reviewerID, requestID uuid.UUID) (bool, error)
	ListByReviewedUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Review, error)
	ListBySkill(ctx context.Context, skillID uuid.UUID, limit int) ([]*entity.Review, error)
	StatsForUser(ctx context.Context, userID uuid.UUID) (valueobject.RatingStats, error)
	StatsForSkill(ctx context.Context, skillID uuid.UUID) (valueobject.RatingStats, error)
}
