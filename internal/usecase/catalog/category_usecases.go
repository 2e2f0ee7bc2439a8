package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

// CategoryUseCases справочник категорий. Изменять его может только персонал.
type CategoryUseCases struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewCategoryUseCases(categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) *CategoryUseCases {
	return &CategoryUseCases{categoryRepo: categoryRepo, userRepo: userRepo}
}

func (uc *CategoryUseCases) List(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

func (uc *CategoryUseCases) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return uc.categoryRepo.FindByID(ctx, id)
}

func (uc *CategoryUseCases) Create(ctx context.Context, actorID uuid.UUID, name, description, icon string) (*entity.Category, error) {
	if err := uc.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	category, err := entity.NewCategory(name, description, icon)
	if err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete навыки удалённой категории остаются без категории.
func (uc *CategoryUseCases) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if err := uc.requireStaff(ctx, actorID); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(ctx, id)
}

func (uc *CategoryUseCases) requireStaff(ctx context.Context, actorID uuid.UUID) error {
	user, err := uc.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.ErrUnauthorized
		}
		return err
	}
	if !user.IsStaff {
		return apperror.New(apperror.ErrCodeForbidden, "управлять категориями может только персонал")
	}
	return nil
}
