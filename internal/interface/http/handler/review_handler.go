package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/profile"
	"github.com/skillswap/backend/internal/usecase/review"
	"github.com/skillswap/backend/internal/validation"
)

type ReviewHandler struct {
	submitUC    *review.SubmitReviewUseCase
	canReviewUC *review.CanReviewUseCase
	ratingUC    *review.AverageRatingUseCase
	listUC      *review.ListReviewsUseCase
	profileUC   *profile.GetProfileUseCase
}

func NewReviewHandler(
	submitUC *review.SubmitReviewUseCase,
	canReviewUC *review.CanReviewUseCase,
	ratingUC *review.AverageRatingUseCase,
	listUC *review.ListReviewsUseCase,
	profileUC *profile.GetProfileUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		submitUC:    submitUC,
		canReviewUC: canReviewUC,
		ratingUC:    ratingUC,
		listUC:      listUC,
		profileUC:   profileUC,
	}
}

// SubmitReview POST /api/requests/:id/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "оценки должны быть от 1 до 5")
		return
	}
	if err := validation.ValidateReviewComment(req.Comment); err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.submitUC.Execute(c.Request.Context(), review.SubmitReviewInput{
		RequestID:  requestID,
		ReviewerID: userID,
		Ratings:    req.Ratings(),
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReviewResponse(created))
}

// CanReview GET /api/requests/:id/can-review
func (h *ReviewHandler) CanReview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	allowed, err := h.canReviewUC.Execute(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"can_review": allowed})
}

// ListUserReviews GET /api/users/:username/reviews
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	user, err := h.profileUC.FindUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	reviews, err := h.listUC.ForUser(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.ratingUC.Summary(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ReviewListResponse{
		Reviews: dto.ToReviewResponses(reviews),
		Summary: dto.ToRatingSummaryResponse(summary),
	})
}

// ListSkillReviews GET /api/skills/:id/reviews
func (h *ReviewHandler) ListSkillReviews(c *gin.Context) {
	skillID, ok := parseUUIDParam(c, "id", "некорректный ID навыка")
	if !ok {
		return
	}

	reviews, err := h.listUC.ForSkill(c.Request.Context(), skillID)
	if err != nil {
		response.Error(c, err)
		return
	}
	average, err := h.ratingUC.ForSkill(c.Request.Context(), skillID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"reviews":        dto.ToReviewResponses(reviews),
		"average_rating": average,
	})
}
