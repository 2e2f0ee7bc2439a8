package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperror.ErrEmailTaken
		}
		if strings.EqualFold(u.Username, user.Username) {
			return apperror.ErrUsernameTaken
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *UserRepository) findBy(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

type UserSkillRepository struct {
	s *Store
}

func (r *UserSkillRepository) Create(ctx context.Context, skill *entity.UserSkill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, us := range r.s.userSkills {
		if us.UserID == skill.UserID && us.SkillType == skill.SkillType && strings.EqualFold(us.SkillName, skill.SkillName) {
			return apperror.ErrUserSkillExists
		}
	}
	cp := *skill
	r.s.userSkills[skill.ID] = &cp
	return nil
}

func (r *UserSkillRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	us, ok := r.s.userSkills[id]
	if !ok || us.UserID != userID {
		return apperror.ErrUserSkillNotFound
	}
	delete(r.s.userSkills, id)
	return nil
}

func (r *UserSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserSkill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.UserSkill, 0)
	for _, us := range r.s.userSkills {
		if us.UserID == userID {
			cp := *us
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SkillName < result[j].SkillName })
	return result, nil
}
