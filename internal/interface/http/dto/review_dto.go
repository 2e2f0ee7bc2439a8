package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/usecase/review"
)

type SubmitReviewRequest struct {
	Rating              int    `json:"rating" binding:"required,rating"`
	CommunicationRating *int   `json:"communication_rating" binding:"omitempty,rating"`
	KnowledgeRating     *int   `json:"knowledge_rating" binding:"omitempty,rating"`
	PatienceRating      *int   `json:"patience_rating" binding:"omitempty,rating"`
	Comment             string `json:"comment"`
}

func (r SubmitReviewRequest) Ratings() entity.ReviewRatings {
	return entity.ReviewRatings{
		Rating:        r.Rating,
		Communication: r.CommunicationRating,
		Knowledge:     r.KnowledgeRating,
		Patience:      r.PatienceRating,
	}
}

type ReviewResponse struct {
	ID                    uuid.UUID  `json:"id"`
	ReviewerID            uuid.UUID  `json:"reviewer_id"`
	ReviewerUsername      string     `json:"reviewer_username,omitempty"`
	ReviewedUserID        uuid.UUID  `json:"reviewed_user_id"`
	SkillID               uuid.UUID  `json:"skill_id"`
	SkillTitle            string     `json:"skill_title,omitempty"`
	RequestID             *uuid.UUID `json:"request_id"`
	Rating                int        `json:"rating"`
	CommunicationRating   int        `json:"communication_rating"`
	KnowledgeRating       int        `json:"knowledge_rating"`
	PatienceRating        int        `json:"patience_rating"`
	AverageDetailedRating float64    `json:"average_detailed_rating"`
	Comment               string     `json:"comment"`
	CreatedAt             time.Time  `json:"created_at"`
}

func ToReviewResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:                    r.ID,
		ReviewerID:            r.ReviewerID,
		ReviewerUsername:      r.ReviewerUsername,
		ReviewedUserID:        r.ReviewedUserID,
		SkillID:               r.SkillID,
		SkillTitle:            r.SkillTitle,
		RequestID:             r.RequestID,
		Rating:                int(r.Rating),
		CommunicationRating:   int(r.CommunicationRating),
		KnowledgeRating:       int(r.KnowledgeRating),
		PatienceRating:        int(r.PatienceRating),
		AverageDetailedRating: r.AverageDetailedRating(),
		Comment:               r.Comment,
		CreatedAt:             r.CreatedAt,
	}
}

func ToReviewResponses(reviews []*entity.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, ToReviewResponse(r))
	}
	return responses
}

type RatingSummaryResponse struct {
	Average   float64     `json:"average"`
	Total     int         `json:"total"`
	Breakdown map[int]int `json:"breakdown"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse      `json:"reviews"`
	Summary RatingSummaryResponse `json:"summary"`
}

func ToRatingSummaryResponse(s *review.RatingSummary) RatingSummaryResponse {
	return RatingSummaryResponse{
		Average:   s.Average,
		Total:     s.Total,
		Breakdown: s.Breakdown,
	}
}
