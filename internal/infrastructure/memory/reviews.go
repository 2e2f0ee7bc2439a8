package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type ReviewRepository struct {
	s *Store
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if review.RequestID != nil && r.exists(review.ReviewerID, *review.RequestID) {
		return apperror.ErrDuplicateReview
	}
	cp := *review
	r.s.reviews = append(r.s.reviews, &cp)
	return nil
}

func (r *ReviewRepository) ExistsForRequest(ctx context.Context, reviewerID, requestID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.exists(reviewerID, requestID), nil
}

func (r *ReviewRepository) exists(reviewerID, requestID uuid.UUID) bool {
	for _, rv := range r.s.reviews {
		if rv.ReviewerID == reviewerID && rv.RequestID != nil && *rv.RequestID == requestID {
			return true
		}
	}
	return false
}

func (r *ReviewRepository) ListByReviewedUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Review, error) {
	return r.list(func(rv *entity.Review) bool { return rv.ReviewedUserID == userID }, limit), nil
}

func (r *ReviewRepository) ListBySkill(ctx context.Context, skillID uuid.UUID, limit int) ([]*entity.Review, error) {
	return r.list(func(rv *entity.Review) bool { return rv.SkillID == skillID }, limit), nil
}

// list новые отзывы первыми.
func (r *ReviewRepository) list(match func(*entity.Review) bool, limit int) []*entity.Review {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.Review, 0)
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		rv := r.s.reviews[i]
		if !match(rv) {
			continue
		}
		cp := *rv
		cp.ReviewerUsername = r.s.usernameOf(rv.ReviewerID)
		cp.SkillTitle = r.s.skillTitleOf(rv.SkillID)
		result = append(result, &cp)
	}
	return page(result, limit, 0)
}

func (r *ReviewRepository) StatsForUser(ctx context.Context, userID uuid.UUID) (valueobject.RatingStats, error) {
	return r.stats(func(rv *entity.Review) bool { return rv.ReviewedUserID == userID }), nil
}

func (r *ReviewRepository) StatsForSkill(ctx context.Context, skillID uuid.UUID) (valueobject.RatingStats, error) {
	return r.stats(func(rv *entity.Review) bool { return rv.SkillID == skillID }), nil
}

func (r *ReviewRepository) stats(match func(*entity.Review) bool) valueobject.RatingStats {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats valueobject.RatingStats
	for _, rv := range r.s.reviews {
		if match(rv) {
			stats.Add(rv.Rating)
		}
	}
	return stats
}
