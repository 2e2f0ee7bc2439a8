package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

const (
	DefaultPageSize   = 12
	MaxPageSize       = 50
	RelatedLimit      = 4
	QuickSearchLimit  = 10
	QuickSearchMinLen = 2
)

type Sanitizer interface {
	SanitizeString(s string) string
}

type CreateSkillUseCase struct {
	skillRepo    repository.SkillRepository
	categoryRepo repository.CategoryRepository
	sanitizer    Sanitizer
}

func NewCreateSkillUseCase(skillRepo repository.SkillRepository, categoryRepo repository.CategoryRepository, sanitizer Sanitizer) *CreateSkillUseCase {
	return &CreateSkillUseCase{skillRepo: skillRepo, categoryRepo: categoryRepo, sanitizer: sanitizer}
}

func (uc *CreateSkillUseCase) Execute(ctx context.Context, ownerID uuid.UUID, in entity.SkillInput) (*entity.Skill, error) {
	if err := checkCategory(ctx, uc.categoryRepo, in.CategoryID); err != nil {
		return nil, err
	}
	in.Description = uc.sanitizer.SanitizeString(in.Description)

	skill, err := entity.NewSkill(ownerID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return uc.skillRepo.FindByID(ctx, skill.ID)
}

type UpdateSkillInput struct {
	entity.SkillInput
	IsActive *bool
}

type UpdateSkillUseCase struct {
	skillRepo    repository.SkillRepository
	categoryRepo repository.CategoryRepository
	sanitizer    Sanitizer
}

func NewUpdateSkillUseCase(skillRepo repository.SkillRepository, categoryRepo repository.CategoryRepository, sanitizer Sanitizer) *UpdateSkillUseCase {
	return &UpdateSkillUseCase{skillRepo: skillRepo, categoryRepo: categoryRepo, sanitizer: sanitizer}
}

func (uc *UpdateSkillUseCase) Execute(ctx context.Context, skillID, actorID uuid.UUID, in UpdateSkillInput) (*entity.Skill, error) {
	skill, err := uc.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if !skill.IsOwnedBy(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "редактировать навык может только владелец")
	}
	if err := checkCategory(ctx, uc.categoryRepo, in.CategoryID); err != nil {
		return nil, err
	}

	active := skill.IsActive
	if in.IsActive != nil {
		active = *in.IsActive
	}
	in.Description = uc.sanitizer.SanitizeString(in.Description)
	if err := skill.Update(in.SkillInput, active); err != nil {
		return nil, err
	}
	if err := uc.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return uc.skillRepo.FindByID(ctx, skill.ID)
}

type DeleteSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewDeleteSkillUseCase(skillRepo repository.SkillRepository) *DeleteSkillUseCase {
	return &DeleteSkillUseCase{skillRepo: skillRepo}
}

// Execute удаление каскадно убирает заявки, переписку и отзывы по навыку.
func (uc *DeleteSkillUseCase) Execute(ctx context.Context, skillID, actorID uuid.UUID) error {
	skill, err := uc.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		return err
	}
	if !skill.IsOwnedBy(actorID) {
		return apperror.New(apperror.ErrCodeForbidden, "удалить навык может только владелец")
	}
	return uc.skillRepo.Delete(ctx, skillID)
}

type SkillDetail struct {
	Skill   *entity.Skill
	Related []*entity.Skill
	IsOwner bool
}

type GetSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewGetSkillUseCase(skillRepo repository.SkillRepository) *GetSkillUseCase {
	return &GetSkillUseCase{skillRepo: skillRepo}
}

// Execute viewerID может быть uuid.Nil для анонимного просмотра.
// Неактивный навык виден только владельцу, просмотр владельцем не считается.
func (uc *GetSkillUseCase) Execute(ctx context.Context, skillID, viewerID uuid.UUID) (*SkillDetail, error) {
	skill, err := uc.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	isOwner := viewerID != uuid.Nil && skill.IsOwnedBy(viewerID)
	if !skill.IsActive && !isOwner {
		return nil, apperror.ErrSkillNotFound
	}

	if !isOwner {
		if err := uc.skillRepo.IncrementViews(ctx, skillID); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"skill_id": skillID,
				"error":    err,
			}).Warn("не удалось увеличить счётчик просмотров")
		} else {
			skill.ViewsCount++
		}
	}

	related, err := uc.skillRepo.ListRelated(ctx, skill, RelatedLimit)
	if err != nil {
		return nil, err
	}
	return &SkillDetail{Skill: skill, Related: related, IsOwner: isOwner}, nil
}

type SearchSkillsInput struct {
	Query      string
	CategoryID *uuid.UUID
	Level      string
	Location   string
	Sort       string
	Limit      int
	Offset     int
}

type SearchSkillsUseCase struct {
	skillRepo repository.SkillRepository
}

func NewSearchSkillsUseCase(skillRepo repository.SkillRepository) *SearchSkillsUseCase {
	return &SearchSkillsUseCase{skillRepo: skillRepo}
}

func (uc *SearchSkillsUseCase) Execute(ctx context.Context, in SearchSkillsInput) ([]*entity.Skill, int, error) {
	filter := repository.SkillFilter{
		Query:      strings.TrimSpace(in.Query),
		CategoryID: in.CategoryID,
		ActiveOnly: true,
		Sort:       valueobject.NewSkillSort(in.Sort),
		Limit:      normalizeLimit(in.Limit),
		Offset:     in.Offset,
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if in.Level != "" {
		level, err := valueobject.NewSkillLevel(in.Level)
		if err != nil {
			return nil, 0, err
		}
		filter.Level = &level
	}
	if in.Location != "" {
		mode, err := valueobject.NewLocationMode(in.Location)
		if err != nil {
			return nil, 0, err
		}
		filter.Location = &mode
	}
	return uc.skillRepo.Search(ctx, filter)
}

// QuickSearch подсказки для строки поиска. Короткий запрос даёт пустой список.
func (uc *SearchSkillsUseCase) QuickSearch(ctx context.Context, query string) ([]*entity.Skill, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < QuickSearchMinLen {
		return []*entity.Skill{}, nil
	}
	items, _, err := uc.skillRepo.Search(ctx, repository.SkillFilter{
		Query:      query,
		ActiveOnly: true,
		Sort:       valueobject.SkillSortRecent,
		Limit:      QuickSearchLimit,
	})
	return items, err
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func checkCategory(ctx context.Context, repo repository.CategoryRepository, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := repo.FindByID(ctx, *id)
	return err
}
