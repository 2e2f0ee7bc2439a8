package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

const DefaultCategoryIcon = "fa-folder"

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time

	SkillCount int
}

func NewCategory(name, description, icon string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название категории обязательно")
	}
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Icon:        icon,
		CreatedAt:   time.Now(),
	}, nil
}

type Skill struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	CategoryID         *uuid.UUID
	Title              string
	Description        string
	Level              valueobject.SkillLevel
	Duration           string
	LocationPreference valueobject.LocationMode
	IsActive           bool
	ViewsCount         int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	OwnerUsername string
	CategoryName  string
	AverageRating float64
	ReviewCount   int
}

type SkillInput struct {
	CategoryID         *uuid.UUID
	Title              string
	Description        string
	Level              string
	Duration           string
	LocationPreference string
}

func NewSkill(ownerID uuid.UUID, in SkillInput) (*Skill, error) {
	s := &Skill{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.apply(in); err != nil {
		return nil, err
	}
	s.UpdatedAt = s.CreatedAt
	return s, nil
}

func (s *Skill) Update(in SkillInput, active bool) error {
	if err := s.apply(in); err != nil {
		return err
	}
	s.IsActive = active
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Skill) apply(in SkillInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return apperror.New(apperror.ErrCodeValidation, "название навыка обязательно")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return apperror.New(apperror.ErrCodeValidation, "описание навыка обязательно")
	}
	level, err := valueobject.NewSkillLevel(in.Level)
	if err != nil {
		return err
	}
	mode, err := valueobject.NewLocationMode(in.LocationPreference)
	if err != nil {
		return err
	}

	s.CategoryID = in.CategoryID
	s.Title = title
	s.Description = description
	s.Level = level
	s.Duration = strings.TrimSpace(in.Duration)
	s.LocationPreference = mode
	return nil
}

func (s *Skill) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}
