package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/usecase/profile"
)

// MediaPrefix URL, под которым раздаются загруженные файлы.
const MediaPrefix = "/media/"

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
}

// ToInput дата рождения принимается в формате YYYY-MM-DD.
func (r UpdateProfileRequest) ToInput() (entity.ProfileInput, error) {
	in := entity.ProfileInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Location:  r.Location,
		Phone:     r.Phone,
	}
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			return in, err
		}
		in.DateOfBirth = &dob
	}
	return in, nil
}

type AddUserSkillRequest struct {
	SkillName        string `json:"skill_name" binding:"required"`
	SkillType        string `json:"skill_type" binding:"required,user_skill_type"`
	ProficiencyLevel string `json:"proficiency_level" binding:"omitempty,skill_level"`
}

type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email,omitempty"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	IsStaff           bool       `json:"is_staff"`
	Bio               string     `json:"bio"`
	Location          string     `json:"location"`
	Phone             string     `json:"phone,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	AvatarURL         string     `json:"avatar_url,omitempty"`
	ProfileCompleted  bool       `json:"profile_completed"`
	ProfileCompletion int        `json:"profile_completion"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ToUserResponse публичное представление: контакты не раскрываются.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		IsStaff:           u.IsStaff,
		Bio:               u.Bio,
		Location:          u.Location,
		AvatarURL:         MediaURL(u.AvatarPath),
		ProfileCompleted:  u.ProfileCompleted,
		ProfileCompletion: u.ProfileCompletion(),
		CreatedAt:         u.CreatedAt,
	}
}

// ToOwnUserResponse представление для самого пользователя.
func ToOwnUserResponse(u *entity.User) UserResponse {
	resp := ToUserResponse(u)
	resp.Email = u.Email
	resp.Phone = u.Phone
	resp.DateOfBirth = u.DateOfBirth
	return resp
}

func MediaURL(path string) string {
	if path == "" {
		return ""
	}
	return MediaPrefix + path
}

type UserSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	SkillName        string    `json:"skill_name"`
	SkillType        string    `json:"skill_type"`
	ProficiencyLevel string    `json:"proficiency_level"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToUserSkillResponse(us *entity.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:               us.ID,
		SkillName:        us.SkillName,
		SkillType:        string(us.SkillType),
		ProficiencyLevel: string(us.ProficiencyLevel),
		CreatedAt:        us.CreatedAt,
	}
}

func ToUserSkillResponses(skills []*entity.UserSkill) []UserSkillResponse {
	responses := make([]UserSkillResponse, 0, len(skills))
	for _, us := range skills {
		responses = append(responses, ToUserSkillResponse(us))
	}
	return responses
}

type ProfileResponse struct {
	User          UserResponse        `json:"user"`
	OfferedSkills []UserSkillResponse `json:"offered_skills"`
	WantedSkills  []UserSkillResponse `json:"wanted_skills"`
	Skills        []SkillResponse     `json:"skills"`
	AverageRating float64             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
	Completion    int                 `json:"completion"`
}

func ToProfileResponse(p *profile.PublicProfile, own bool) ProfileResponse {
	user := ToUserResponse(p.User)
	if own {
		user = ToOwnUserResponse(p.User)
	}
	return ProfileResponse{
		User:          user,
		OfferedSkills: ToUserSkillResponses(p.OfferedSkills),
		WantedSkills:  ToUserSkillResponses(p.WantedSkills),
		Skills:        ToSkillResponses(p.Skills),
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
		Completion:    p.Completion,
	}
}
