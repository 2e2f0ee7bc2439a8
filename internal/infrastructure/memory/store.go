// Package memory хранит все данные в памяти процесса.
// Используется драйвером STORAGE_DRIVER=memory и в тестах.
// Каждая операция выполняется под одним мьютексом, поэтому условные
// обновления и вставки с проверкой уникальности атомарны.
package memory

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
)

type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*entity.User
	userSkills    map[uuid.UUID]*entity.UserSkill
	categories    map[uuid.UUID]*entity.Category
	skills        map[uuid.UUID]*entity.Skill
	requests      map[uuid.UUID]*entity.SkillRequest
	messages      []*entity.RequestMessage
	reviews       []*entity.Review
	notifications []*entity.Notification
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]*entity.User),
		userSkills: make(map[uuid.UUID]*entity.UserSkill),
		categories: make(map[uuid.UUID]*entity.Category),
		skills:     make(map[uuid.UUID]*entity.Skill),
		requests:   make(map[uuid.UUID]*entity.SkillRequest),
	}
}

func (s *Store) Users() *UserRepository                     { return &UserRepository{s} }
func (s *Store) UserSkills() *UserSkillRepository           { return &UserSkillRepository{s} }
func (s *Store) Categories() *CategoryRepository            { return &CategoryRepository{s} }
func (s *Store) Skills() *SkillRepository                   { return &SkillRepository{s} }
func (s *Store) SkillRequests() *SkillRequestRepository     { return &SkillRequestRepository{s} }
func (s *Store) RequestMessages() *RequestMessageRepository { return &RequestMessageRepository{s} }
func (s *Store) Reviews() *ReviewRepository                 { return &ReviewRepository{s} }
func (s *Store) Notifications() *NotificationRepository     { return &NotificationRepository{s} }

func (s *Store) usernameOf(id uuid.UUID) string {
	if u, ok := s.users[id]; ok {
		return u.Username
	}
	return ""
}

func (s *Store) skillTitleOf(id uuid.UUID) string {
	if sk, ok := s.skills[id]; ok {
		return sk.Title
	}
	return ""
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

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
