package security

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer удаляет HTML из пользовательского текста: сообщений, отзывов, описаний.
type Sanitizer struct {
	policy *bluemonday.Policy
	maxLen int
}

// NewSanitizer maxLen в символах, 0 без ограничения.
func NewSanitizer(maxLen int) *Sanitizer {
	return &Sanitizer{
		policy: bluemonday.StrictPolicy(),
		maxLen: maxLen,
	}
}

// SanitizeString вырезает теги и нулевые байты, обрезает пробелы и длину.
// Сущности вроде &amp; раскодируются обратно, в базе хранится обычный текст.
func (s *Sanitizer) SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = html.UnescapeString(s.policy.Sanitize(input))
	input = strings.TrimSpace(input)

	if s.maxLen > 0 && utf8.RuneCountInString(input) > s.maxLen {
		input = string([]rune(input)[:s.maxLen])
	}
	return input
}

// SanitizeOptional то же для необязательных полей.
func (s *Sanitizer) SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	v := s.SanitizeString(*input)
	return &v
}
