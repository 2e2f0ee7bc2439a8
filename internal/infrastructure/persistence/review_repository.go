package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type reviewRow struct {
	ID                  uuid.UUID  `db:"id"`
	ReviewerID          uuid.UUID  `db:"reviewer_id"`
	ReviewedUserID      uuid.UUID  `db:"reviewed_user_id"`
	SkillID             uuid.UUID  `db:"skill_id"`
	RequestID           *uuid.UUID `db:"request_id"`
	Rating              int        `db:"rating"`
	CommunicationRating int        `db:"communication_rating"`
	KnowledgeRating     int        `db:"knowledge_rating"`
	PatienceRating      int        `db:"patience_rating"`
	Comment             string     `db:"comment"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	ReviewerUsername    string     `db:"reviewer_username"`
	SkillTitle          string     `db:"skill_title"`
}

func (r reviewRow) toEntity() *entity.Review {
	return &entity.Review{
		ID:                  r.ID,
		ReviewerID:          r.ReviewerID,
		ReviewedUserID:      r.ReviewedUserID,
		SkillID:             r.SkillID,
		RequestID:           r.RequestID,
		Rating:              valueobject.Rating(r.Rating),
		CommunicationRating: valueobject.Rating(r.CommunicationRating),
		KnowledgeRating:     valueobject.Rating(r.KnowledgeRating),
		PatienceRating:      valueobject.Rating(r.PatienceRating),
		Comment:             r.Comment,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
		ReviewerUsername:    r.ReviewerUsername,
		SkillTitle:          r.SkillTitle,
	}
}

const reviewSelect = `
	SELECT rv.id, rv.reviewer_id, rv.reviewed_user_id, rv.skill_id, rv.request_id, rv.rating,
	       rv.communication_rating, rv.knowledge_rating, rv.patience_rating, rv.comment,
	       rv.created_at, rv.updated_at, u.username AS reviewer_username, s.title AS skill_title
	FROM reviews rv
	JOIN users u ON u.id = rv.reviewer_id
	JOIN skills s ON s.id = rv.skill_id
`

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create повторный отзыв отсекает ограничение reviews_reviewer_request_key.
func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, reviewer_id, reviewed_user_id, skill_id, request_id, rating,
		                     communication_rating, knowledge_rating, patience_rating, comment,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.ReviewerID, review.ReviewedUserID, review.SkillID, review.RequestID,
		review.Rating.Int(), review.CommunicationRating.Int(), review.KnowledgeRating.Int(),
		review.PatienceRating.Int(), review.Comment, review.CreatedAt, review.UpdatedAt,
	)
	if constraint, ok := uniqueViolation(err); ok && constraint == constraintReviewPerActor {
		return apperror.ErrDuplicateReview
	}
	if err != nil {
		return dbError(err, "не удалось сохранить отзыв")
	}
	return nil
}

func (r *ReviewRepository) ExistsForRequest(ctx context.Context, reviewerID, requestID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE reviewer_id = $1 AND request_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, reviewerID, requestID); err != nil {
		return false, dbError(err, "не удалось проверить отзыв")
	}
	return exists, nil
}

func (r *ReviewRepository) ListByReviewedUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Review, error) {
	return r.list(ctx, `WHERE rv.reviewed_user_id = $1`, userID, limit)
}

func (r *ReviewRepository) ListBySkill(ctx context.Context, skillID uuid.UUID, limit int) ([]*entity.Review, error) {
	return r.list(ctx, `WHERE rv.skill_id = $1`, skillID, limit)
}

func (r *ReviewRepository) list(ctx context.Context, where string, id uuid.UUID, limit int) ([]*entity.Review, error) {
	query := reviewSelect + where + ` ORDER BY rv.created_at DESC LIMIT $2`
	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, query, id, limit); err != nil {
		return nil, dbError(err, "не удалось получить отзывы")
	}
	result := make([]*entity.Review, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

func (r *ReviewRepository) StatsForUser(ctx context.Context, userID uuid.UUID) (valueobject.RatingStats, error) {
	return r.stats(ctx, `reviewed_user_id`, userID)
}

func (r *ReviewRepository) StatsForSkill(ctx context.Context, skillID uuid.UUID) (valueobject.RatingStats, error) {
	return r.stats(ctx, `skill_id`, skillID)
}

func (r *ReviewRepository) stats(ctx context.Context, column string, id uuid.UUID) (valueobject.RatingStats, error) {
	var rows []struct {
		Rating int `db:"rating"`
		Count  int `db:"count"`
	}
	query := `SELECT rating, COUNT(*) AS count FROM reviews WHERE ` + column + ` = $1 GROUP BY rating`

	var stats valueobject.RatingStats
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return stats, dbError(err, "не удалось посчитать рейтинг")
	}
	for _, row := range rows {
		for i := 0; i < row.Count; i++ {
			stats.Add(valueobject.Rating(row.Rating))
		}
	}
	return stats, nil
}
