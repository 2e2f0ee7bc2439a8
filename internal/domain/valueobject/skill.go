package valueobject

import "github.com/skillswap/backend/internal/pkg/apperror"

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}

// NewSkillLevel пустое значение трактуется как intermediate.
func NewSkillLevel(level string) (SkillLevel, error) {
	if level == "" {
		return SkillLevelIntermediate, nil
	}
	l := SkillLevel(level)
	if !l.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка")
	}
	return l, nil
}

type LocationMode string

const (
	LocationOnline   LocationMode = "online"
	LocationInPerson LocationMode = "in_person"
	LocationBoth     LocationMode = "both"
)

func (m LocationMode) IsValid() bool {
	switch m {
	case LocationOnline, LocationInPerson, LocationBoth:
		return true
	}
	return false
}

func NewLocationMode(mode string) (LocationMode, error) {
	if mode == "" {
		return LocationBoth, nil
	}
	m := LocationMode(mode)
	if !m.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный формат проведения")
	}
	return m, nil
}

// UserSkillType навык, который пользователь предлагает или хочет изучить.
type UserSkillType string

const (
	UserSkillOffer UserSkillType = "offer"
	UserSkillWant  UserSkillType = "want"
)

func NewUserSkillType(t string) (UserSkillType, error) {
	switch UserSkillType(t) {
	case UserSkillOffer, UserSkillWant:
		return UserSkillType(t), nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "тип навыка должен быть offer или want")
}

type SkillSort string

const (
	SkillSortRecent  SkillSort = "recent"
	SkillSortPopular SkillSort = "popular"
	SkillSortRating  SkillSort = "rating"
)

// NewSkillSort неизвестные значения сводятся к recent.
func NewSkillSort(sort string) SkillSort {
	switch SkillSort(sort) {
	case SkillSortPopular, SkillSortRating:
		return SkillSort(sort)
	}
	return SkillSortRecent
}
