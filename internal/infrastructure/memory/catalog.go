package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return apperror.ErrCategoryExists
		}
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

// Delete навыки категории остаются, но теряют ссылку на неё.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return apperror.ErrCategoryNotFound
	}
	delete(r.s.categories, id)
	for _, sk := range r.s.skills {
		if sk.CategoryID != nil && *sk.CategoryID == id {
			sk.CategoryID = nil
		}
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, apperror.ErrCategoryNotFound
	}
	return r.decorate(c), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		result = append(result, r.decorate(c))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CategoryRepository) decorate(c *entity.Category) *entity.Category {
	cp := *c
	for _, sk := range r.s.skills {
		if sk.IsActive && sk.CategoryID != nil && *sk.CategoryID == c.ID {
			cp.SkillCount++
		}
	}
	return &cp
}

type SkillRepository struct {
	s *Store
}

func (r *SkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkCategory(skill.CategoryID); err != nil {
		return err
	}
	cp := *skill
	r.s.skills[skill.ID] = &cp
	return nil
}

func (r *SkillRepository) Update(ctx context.Context, skill *entity.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.skills[skill.ID]
	if !ok {
		return apperror.ErrSkillNotFound
	}
	if err := r.checkCategory(skill.CategoryID); err != nil {
		return err
	}
	cp := *skill
	cp.ViewsCount = existing.ViewsCount
	r.s.skills[skill.ID] = &cp
	return nil
}

func (r *SkillRepository) checkCategory(id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, ok := r.s.categories[*id]; !ok {
		return apperror.ErrCategoryNotFound
	}
	return nil
}

// Delete каскадно удаляет заявки по навыку, их переписку и отзывы.
func (r *SkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.skills[id]; !ok {
		return apperror.ErrSkillNotFound
	}
	delete(r.s.skills, id)

	removed := make(map[uuid.UUID]struct{})
	for rid, req := range r.s.requests {
		if req.SkillID == id {
			removed[rid] = struct{}{}
			delete(r.s.requests, rid)
		}
	}

	messages := r.s.messages[:0]
	for _, m := range r.s.messages {
		if _, gone := removed[m.RequestID]; !gone {
			messages = append(messages, m)
		}
	}
	r.s.messages = messages

	reviews := r.s.reviews[:0]
	for _, rv := range r.s.reviews {
		if rv.SkillID != id {
			reviews = append(reviews, rv)
		}
	}
	r.s.reviews = reviews
	return nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sk, ok := r.s.skills[id]
	if !ok {
		return nil, apperror.ErrSkillNotFound
	}
	return r.decorate(sk), nil
}

func (r *SkillRepository) Search(ctx context.Context, f repository.SkillFilter) ([]*entity.Skill, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*entity.Skill, 0)
	for _, sk := range r.s.skills {
		if !r.matches(sk, f) {
			continue
		}
		matched = append(matched, r.decorate(sk))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch f.Sort {
		case valueobject.SkillSortPopular:
			if a.ViewsCount != b.ViewsCount {
				return a.ViewsCount > b.ViewsCount
			}
		case valueobject.SkillSortRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return page(matched, f.Limit, f.Offset), len(matched), nil
}

func (r *SkillRepository) matches(sk *entity.Skill, f repository.SkillFilter) bool {
	if f.ActiveOnly && !sk.IsActive {
		return false
	}
	if f.OwnerID != nil && sk.OwnerID != *f.OwnerID {
		return false
	}
	if f.ExcludeOwner != nil && sk.OwnerID == *f.ExcludeOwner {
		return false
	}
	if f.CategoryID != nil && (sk.CategoryID == nil || *sk.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Level != nil && sk.Level != *f.Level {
		return false
	}
	if f.Location != nil && sk.LocationPreference != *f.Location {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		return containsFold(sk.Title, q) || containsFold(sk.Description, q) || containsFold(r.s.usernameOf(sk.OwnerID), q)
	}
	return true
}

func (r *SkillRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sk, ok := r.s.skills[id]
	if !ok {
		return apperror.ErrSkillNotFound
	}
	sk.ViewsCount++
	return nil
}

func (r *SkillRepository) ListRelated(ctx context.Context, skill *entity.Skill, limit int) ([]*entity.Skill, error) {
	if skill.CategoryID == nil {
		return []*entity.Skill{}, nil
	}
	related, _, err := r.Search(ctx, repository.SkillFilter{
		CategoryID: skill.CategoryID,
		ActiveOnly: true,
		Sort:       valueobject.SkillSortRecent,
	})
	if err != nil {
		return nil, err
	}

	result := make([]*entity.Skill, 0, limit)
	for _, sk := range related {
		if sk.ID == skill.ID {
			continue
		}
		if len(result) == limit {
			break
		}
		result = append(result, sk)
	}
	return result, nil
}

func (r *SkillRepository) decorate(sk *entity.Skill) *entity.Skill {
	cp := *sk
	cp.OwnerUsername = r.s.usernameOf(sk.OwnerID)
	if sk.CategoryID != nil {
		if c, ok := r.s.categories[*sk.CategoryID]; ok {
			cp.CategoryName = c.Name
		}
	}
	var stats valueobject.RatingStats
	for _, rv := range r.s.reviews {
		if rv.SkillID == sk.ID {
			stats.Add(rv.Rating)
		}
	}
	cp.AverageRating = stats.Average()
	cp.ReviewCount = stats.Count
	return &cp
}
