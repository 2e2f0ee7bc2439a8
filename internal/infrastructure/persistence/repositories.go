package persistence

import (
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/backend/internal/domain/repository"
)

var (
	_ repository.UserRepository           = (*UserRepository)(nil)
	_ repository.UserSkillRepository      = (*UserSkillRepository)(nil)
	_ repository.CategoryRepository       = (*CategoryRepository)(nil)
	_ repository.SkillRepository          = (*SkillRepository)(nil)
	_ repository.SkillRequestRepository   = (*SkillRequestRepository)(nil)
	_ repository.RequestMessageRepository = (*RequestMessageRepository)(nil)
	_ repository.ReviewRepository         = (*ReviewRepository)(nil)
	_ repository.NotificationRepository   = (*NotificationRepository)(nil)
)

// Repositories набор адаптеров поверх одного пула соединений.
type Repositories struct {
	Users           *UserRepository
	UserSkills      *UserSkillRepository
	Categories      *CategoryRepository
	Skills          *SkillRepository
	SkillRequests   *SkillRequestRepository
	RequestMessages *RequestMessageRepository
	Reviews         *ReviewRepository
	Notifications   *NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(db),
		UserSkills:      NewUserSkillRepository(db),
		Categories:      NewCategoryRepository(db),
		Skills:          NewSkillRepository(db),
		SkillRequests:   NewSkillRequestRepository(db),
		RequestMessages: NewRequestMessageRepository(db),
		Reviews:         NewReviewRepository(db),
		Notifications:   NewNotificationRepository(db),
	}
}
