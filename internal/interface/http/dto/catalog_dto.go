package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/usecase/catalog"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	SkillCount  int       `json:"skill_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		SkillCount:  c.SkillCount,
		CreatedAt:   c.CreatedAt,
	}
}

func ToCategoryResponses(categories []*entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, ToCategoryResponse(c))
	}
	return responses
}

type SkillRequest struct {
	CategoryID         *uuid.UUID `json:"category_id"`
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description" binding:"required"`
	Level              string     `json:"level" binding:"omitempty,skill_level"`
	Duration           string     `json:"duration"`
	LocationPreference string     `json:"location_preference" binding:"omitempty,location_mode"`
	IsActive           *bool      `json:"is_active"`
}

func (r SkillRequest) ToInput() entity.SkillInput {
	return entity.SkillInput{
		CategoryID:         r.CategoryID,
		Title:              r.Title,
		Description:        r.Description,
		Level:              r.Level,
		Duration:           r.Duration,
		LocationPreference: r.LocationPreference,
	}
}

type SkillResponse struct {
	ID                 uuid.UUID  `json:"id"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	OwnerUsername      string     `json:"owner_username,omitempty"`
	CategoryID         *uuid.UUID `json:"category_id"`
	CategoryName       string     `json:"category_name,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Level              string     `json:"level"`
	Duration           string     `json:"duration"`
	LocationPreference string     `json:"location_preference"`
	IsActive           bool       `json:"is_active"`
	ViewsCount         int        `json:"views_count"`
	AverageRating      float64    `json:"average_rating"`
	ReviewCount        int        `json:"review_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToSkillResponse(s *entity.Skill) SkillResponse {
	return SkillResponse{
		ID:                 s.ID,
		OwnerID:            s.OwnerID,
		OwnerUsername:      s.OwnerUsername,
		CategoryID:         s.CategoryID,
		CategoryName:       s.CategoryName,
		Title:              s.Title,
		Description:        s.Description,
		Level:              string(s.Level),
		Duration:           s.Duration,
		LocationPreference: string(s.LocationPreference),
		IsActive:           s.IsActive,
		ViewsCount:         s.ViewsCount,
		AverageRating:      s.AverageRating,
		ReviewCount:        s.ReviewCount,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func ToSkillResponses(skills []*entity.Skill) []SkillResponse {
	responses := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		responses = append(responses, ToSkillResponse(s))
	}
	return responses
}

type SkillDetailResponse struct {
	Skill   SkillResponse   `json:"skill"`
	Related []SkillResponse `json:"related"`
	IsOwner bool            `json:"is_owner"`
}

func ToSkillDetailResponse(d *catalog.SkillDetail) SkillDetailResponse {
	return SkillDetailResponse{
		Skill:   ToSkillResponse(d.Skill),
		Related: ToSkillResponses(d.Related),
		IsOwner: d.IsOwner,
	}
}
