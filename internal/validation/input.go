package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MinUsernameLength       = 3
	MaxUsernameLength       = 30
	MaxNameLength           = 150
	MinSkillTitleLength     = 3
	MaxSkillTitleLength     = 200
	MaxSkillDescription     = 5000
	MaxDurationLength       = 100
	MaxCategoryNameLength   = 100
	MaxUserSkillNameLength  = 100
	MaxRequestMessageLength = 2000
	MaxMessageLength        = 5000
	MaxReviewCommentLength  = 2000
	MaxBioLength            = 1000
	MaxLocationLength       = 100
	MaxPhoneLength          = 20
	MinPasswordLength       = 8
	MaxPasswordBytes        = 72 // bcrypt учитывает только первые 72 байта
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	usernameRegex    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	phoneRegex       = regexp.MustCompile(`^\+?[0-9\s\-()]{5,20}$`)
)

func invalid(format string, args ...any) error {
	return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf(format, args...))
}

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return invalid("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return invalid("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return invalid("email обязателен")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return invalid("некорректный формат email")
	}
	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return invalid("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return invalid("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return invalid("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return invalid("доменная часть email имеет некорректный формат")
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return invalid("имя пользователя обязательно")
	}
	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}
	if !usernameRegex.MatchString(username) {
		return invalid("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}
	if unicode.IsDigit(rune(username[0])) {
		return invalid("имя пользователя не может начинаться с цифры")
	}
	return nil
}

// ValidateName имя или фамилия, необязательные.
func ValidateName(fieldName string, value *string) error {
	if value == nil {
		return nil
	}
	return ValidateLength(fieldName, strings.TrimSpace(*value), 0, MaxNameLength)
}

func ValidateSkillTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return invalid("название навыка обязательно")
	}
	return ValidateLength("название навыка", title, MinSkillTitleLength, MaxSkillTitleLength)
}

func ValidateSkillDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return invalid("описание навыка обязательно")
	}
	return ValidateLength("описание навыка", description, 1, MaxSkillDescription)
}

func ValidateDuration(duration string) error {
	return ValidateLength("продолжительность", strings.TrimSpace(duration), 0, MaxDurationLength)
}

func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("название категории обязательно")
	}
	return ValidateLength("название категории", name, 1, MaxCategoryNameLength)
}

func ValidateUserSkillName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("название навыка обязательно")
	}
	return ValidateLength("название навыка", name, 1, MaxUserSkillNameLength)
}

// ValidateRequestMessage сопроводительное сообщение к заявке.
func ValidateRequestMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return invalid("сообщение к заявке обязательно")
	}
	return ValidateLength("сообщение к заявке", message, 1, MaxRequestMessageLength)
}

// ValidateMessageContent проверяет содержимое сообщения в переписке.
func ValidateMessageContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return invalid("сообщение не может быть пустым")
	}
	return ValidateLength("сообщение", content, 1, MaxMessageLength)
}

func ValidateReviewComment(comment string) error {
	return ValidateLength("комментарий", strings.TrimSpace(comment), 0, MaxReviewCommentLength)
}

// ValidateBio проверяет описание профиля.
func ValidateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return ValidateLength("описание профиля", strings.TrimSpace(*bio), 0, MaxBioLength)
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location == nil {
		return nil
	}
	return ValidateLength("местоположение", strings.TrimSpace(*location), 0, MaxLocationLength)
}

// ValidatePhone пустой номер допустим и очищает поле.
func ValidatePhone(phone *string) error {
	if phone == nil {
		return nil
	}
	p := strings.TrimSpace(*phone)
	if p == "" {
		return nil
	}
	if !phoneRegex.MatchString(p) {
		return invalid("некорректный номер телефона")
	}
	return nil
}

// ValidatePassword минимум 8 символов, строчная и заглавная буквы и цифра.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("пароль должен быть не менее %d символов", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return invalid("пароль слишком длинный")
	}

	var upper, lower, digit bool
	for _, r := range password {
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
		digit = digit || unicode.IsDigit(r)
	}
	switch {
	case !upper || !lower:
		return invalid("пароль должен содержать строчные и заглавные буквы")
	case !digit:
		return invalid("пароль должен содержать хотя бы одну цифру")
	}
	return nil
}
