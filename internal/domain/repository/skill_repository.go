package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
)

type SkillFilter struct {
	Query        string
	CategoryID   *uuid.UUID
	Level        *valueobject.SkillLevel
	Location     *valueobject.LocationMode
	OwnerID      *uuid.UUID
	ExcludeOwner *uuid.UUID
	ActiveOnly   bool
	Sort         valueobject.SkillSort
	Limit        int
	Offset       int
}

type SkillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	Update(ctx context.Context, skill *entity.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error)
	Search(ctx context.Context, filter SkillFilter) ([]*entity.Skill, int, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ListRelated(ctx context.Context, skill *entity.Skill, limit int) ([]*entity.Skill, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
