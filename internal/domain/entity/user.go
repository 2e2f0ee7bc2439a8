package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

type User struct {
	ID               uuid.UUID
	Email            string
	Username         string
	PasswordHash     string
	FirstName        string
	LastName         string
	IsStaff          bool
	Bio              string
	Location         string
	Phone            string
	DateOfBirth      *time.Time
	AvatarPath       string
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Role роль, которая попадает в access токен.
func (u *User) Role() string {
	if u.IsStaff {
		return "staff"
	}
	return "user"
}

// ProfileCompletion процент заполненности профиля по четырём полям.
func (u *User) ProfileCompletion() int {
	filled := 0
	for _, v := range []string{u.Bio, u.Location, u.Phone, u.AvatarPath} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	return filled * 100 / 4
}

// RefreshCompletion флаг выставляется один раз и больше не сбрасывается.
func (u *User) RefreshCompletion() {
	if u.ProfileCompletion() == 100 {
		u.ProfileCompleted = true
	}
}

type ProfileInput struct {
	FirstName   *string
	LastName    *string
	Bio         *string
	Location    *string
	Phone       *string
	DateOfBirth *time.Time
}

func (u *User) UpdateProfile(in ProfileInput) {
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Location != nil {
		u.Location = strings.TrimSpace(*in.Location)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.DateOfBirth != nil {
		u.DateOfBirth = in.DateOfBirth
	}
	u.RefreshCompletion()
	u.UpdatedAt = time.Now()
}

func (u *User) SetAvatar(path string) {
	u.AvatarPath = path
	u.RefreshCompletion()
	u.UpdatedAt = time.Now()
}

// UserSkill навык в профиле: то, чему пользователь учит или хочет научиться.
type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillName        string
	SkillType        valueobject.UserSkillType
	ProficiencyLevel valueobject.SkillLevel
	CreatedAt        time.Time
}

func NewUserSkill(userID uuid.UUID, name, skillType, level string) (*UserSkill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название навыка обязательно")
	}
	t, err := valueobject.NewUserSkillType(skillType)
	if err != nil {
		return nil, err
	}
	l, err := valueobject.NewSkillLevel(level)
	if err != nil {
		return nil, err
	}
	return &UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillName:        name,
		SkillType:        t,
		ProficiencyLevel: l,
		CreatedAt:        time.Now(),
	}, nil
}
