package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/security"
)

func TestSanitizeString(t *testing.T) {
	s := security.NewSanitizer(10)

	assert.Equal(t, "hi", s.SanitizeString("  <b>hi</b>\x00 "))
	assert.Equal(t, "", s.SanitizeString("<script>alert(1)</script>"))
	assert.Equal(t, "Tom & Jerr", s.SanitizeString("Tom & Jerry"))
	assert.Equal(t, "привет", s.SanitizeString("привет"))
}

func TestSanitizeOptional(t *testing.T) {
	s := security.NewSanitizer(0)

	assert.Nil(t, s.SanitizeOptional(nil))
	in := "<i>bio</i>"
	assert.Equal(t, "bio", *s.SanitizeOptional(&in))
}
