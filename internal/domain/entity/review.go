package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type Review struct {
	ID                  uuid.UUID
	ReviewerID          uuid.UUID
	ReviewedUserID      uuid.UUID
	SkillID             uuid.UUID
	RequestID           *uuid.UUID
	Rating              valueobject.Rating
	CommunicationRating valueobject.Rating
	KnowledgeRating     valueobject.Rating
	PatienceRating      valueobject.Rating
	Comment             string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	ReviewerUsername string
	SkillTitle       string
}

// ReviewRatings входные оценки; nil для подоценок означает значение по умолчанию.
type ReviewRatings struct {
	Rating        int
	Communication *int
	Knowledge     *int
	Patience      *int
}

// NewReview отзыв пишется только по завершённой заявке одним из её участников.
func NewReview(request *SkillRequest, reviewer uuid.UUID, ratings ReviewRatings, comment string) (*Review, error) {
	if !request.IsCompleted() {
		return nil, apperror.ErrRequestNotCompleted
	}
	if !request.IsParticipant(reviewer) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "оставить отзыв может только участник заявки")
	}

	rating, err := valueobject.NewRating(ratings.Rating)
	if err != nil {
		return nil, err
	}
	communication, err := valueobject.NewOptionalRating(ratings.Communication)
	if err != nil {
		return nil, err
	}
	knowledge, err := valueobject.NewOptionalRating(ratings.Knowledge)
	if err != nil {
		return nil, err
	}
	patience, err := valueobject.NewOptionalRating(ratings.Patience)
	if err != nil {
		return nil, err
	}

	requestID := request.ID
	now := time.Now()
	return &Review{
		ID:                  uuid.New(),
		ReviewerID:          reviewer,
		ReviewedUserID:      request.Counterpart(reviewer),
		SkillID:             request.SkillID,
		RequestID:           &requestID,
		Rating:              rating,
		CommunicationRating: communication,
		KnowledgeRating:     knowledge,
		PatienceRating:      patience,
		Comment:             strings.TrimSpace(comment),
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// AverageDetailedRating среднее трёх подоценок с точностью до десятых.
func (r *Review) AverageDetailedRating() float64 {
	sum := r.CommunicationRating + r.KnowledgeRating + r.PatienceRating
	return valueobject.RoundToTenth(float64(sum) / 3)
}
