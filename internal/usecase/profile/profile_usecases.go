package profile

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/logger"
)

const profileSkillsLimit = 50

type Sanitizer interface {
	SanitizeString(s string) string
}

type AvatarStorage interface {
	SaveAvatar(ctx context.Context, userID uuid.UUID, r io.Reader) (string, error)
	Delete(ctx context.Context, relativePath string) error
}

// PublicProfile публичная страница пользователя.
type PublicProfile struct {
	User          *entity.User
	OfferedSkills []*entity.UserSkill
	WantedSkills  []*entity.UserSkill
	Skills        []*entity.Skill
	AverageRating float64
	ReviewCount   int
	Completion    int
}

type GetProfileUseCase struct {
	userRepo      repository.UserRepository
	userSkillRepo repository.UserSkillRepository
	skillRepo     repository.SkillRepository
	reviewRepo    repository.ReviewRepository
}

func NewGetProfileUseCase(userRepo repository.UserRepository, userSkillRepo repository.UserSkillRepository, skillRepo repository.SkillRepository, reviewRepo repository.ReviewRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo:      userRepo,
		userSkillRepo: userSkillRepo,
		skillRepo:     skillRepo,
		reviewRepo:    reviewRepo,
	}
}

func (uc *GetProfileUseCase) ByUsername(ctx context.Context, username string) (*PublicProfile, error) {
	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.build(ctx, user)
}

// FindUser находит пользователя по имени без сборки профиля.
func (uc *GetProfileUseCase) FindUser(ctx context.Context, username string) (*entity.User, error) {
	return uc.userRepo.FindByUsername(ctx, username)
}

func (uc *GetProfileUseCase) Me(ctx context.Context, actorID uuid.UUID) (*PublicProfile, error) {
	user, err := uc.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return uc.build(ctx, user)
}

func (uc *GetProfileUseCase) build(ctx context.Context, user *entity.User) (*PublicProfile, error) {
	userSkills, err := uc.userSkillRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	offered, wanted := splitUserSkills(userSkills)

	skills, _, err := uc.skillRepo.Search(ctx, repository.SkillFilter{
		OwnerID:    &user.ID,
		ActiveOnly: true,
		Sort:       valueobject.SkillSortRecent,
		Limit:      profileSkillsLimit,
	})
	if err != nil {
		return nil, err
	}

	stats, err := uc.reviewRepo.StatsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		User:          user,
		OfferedSkills: offered,
		WantedSkills:  wanted,
		Skills:        skills,
		AverageRating: stats.Average(),
		ReviewCount:   stats.Count,
		Completion:    user.ProfileCompletion(),
	}, nil
}

func splitUserSkills(all []*entity.UserSkill) (offered, wanted []*entity.UserSkill) {
	offered = make([]*entity.UserSkill, 0)
	wanted = make([]*entity.UserSkill, 0)
	for _, us := range all {
		if us.SkillType == valueobject.UserSkillOffer {
			offered = append(offered, us)
		} else {
			wanted = append(wanted, us)
		}
	}
	return offered, wanted
}

type UpdateProfileUseCase struct {
	userRepo  repository.UserRepository
	sanitizer Sanitizer
}

func NewUpdateProfileUseCase(userRepo repository.UserRepository, sanitizer Sanitizer) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo, sanitizer: sanitizer}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, actorID uuid.UUID, in entity.ProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if in.Bio != nil {
		bio := uc.sanitizer.SanitizeString(*in.Bio)
		in.Bio = &bio
	}
	user.UpdateProfile(in)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UploadAvatarUseCase struct {
	userRepo repository.UserRepository
	storage  AvatarStorage
}

func NewUploadAvatarUseCase(userRepo repository.UserRepository, storage AvatarStorage) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{userRepo: userRepo, storage: storage}
}

// Execute новый файл сохраняется до обновления профиля, старый удаляется после.
func (uc *UploadAvatarUseCase) Execute(ctx context.Context, actorID uuid.UUID, r io.Reader) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	path, err := uc.storage.SaveAvatar(ctx, actorID, r)
	if err != nil {
		return nil, err
	}

	previous := user.AvatarPath
	user.SetAvatar(path)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		_ = uc.storage.Delete(ctx, path)
		return nil, err
	}

	if previous != "" {
		if err := uc.storage.Delete(ctx, previous); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"user_id": actorID,
				"path":    previous,
				"error":   err,
			}).Warn("не удалось удалить старый аватар")
		}
	}
	return user, nil
}

type UserSkillUseCases struct {
	repo repository.UserSkillRepository
}

func NewUserSkillUseCases(repo repository.UserSkillRepository) *UserSkillUseCases {
	return &UserSkillUseCases{repo: repo}
}

func (uc *UserSkillUseCases) Add(ctx context.Context, actorID uuid.UUID, name, skillType, level string) (*entity.UserSkill, error) {
	us, err := entity.NewUserSkill(actorID, name, skillType, level)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, us); err != nil {
		return nil, err
	}
	return us, nil
}

// Remove чужой навык неотличим от отсутствующего.
func (uc *UserSkillUseCases) Remove(ctx context.Context, actorID, id uuid.UUID) error {
	return uc.repo.Delete(ctx, id, actorID)
}

func (uc *UserSkillUseCases) List(ctx context.Context, userID uuid.UUID) ([]*entity.UserSkill, error) {
	return uc.repo.ListByUser(ctx, userID)
}
