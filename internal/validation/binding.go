package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/skillswap/backend/internal/domain/valueobject"
)

// RegisterBindingValidators подключает доменные проверки к тегам binding:"…" в DTO.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerValidators(v)
}

func registerValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"skill_level":     skillLevel,
		"location_mode":   locationMode,
		"rating":          rating,
		"user_skill_type": userSkillType,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Пустые значения пропускаются: для них действует значение по умолчанию.
func skillLevel(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || valueobject.SkillLevel(s).IsValid()
}

func locationMode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || valueobject.LocationMode(s).IsValid()
}

func rating(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= valueobject.MinRating && n <= valueobject.MaxRating
}

func userSkillType(fl validator.FieldLevel) bool {
	_, err := valueobject.NewUserSkillType(fl.Field().String())
	return err == nil
}
