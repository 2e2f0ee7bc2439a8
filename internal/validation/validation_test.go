package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("Anna.K+skills@example.com"))
	for _, bad := range []string{"", "no-at", "a@b", "a@@b.com", "bad char@x.io"} {
		err := ValidateEmail(bad)
		assert.True(t, apperror.IsValidation(err), bad)
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("anna_k"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("1anna"))
	assert.Error(t, ValidateUsername("anna k"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret123"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
	assert.NoError(t, ValidatePassword("Пароль2024"))
	assert.Error(t, ValidatePassword("Aa1"+strings.Repeat("x", 70)))
}

func TestValidatePhone(t *testing.T) {
	empty := ""
	ok := "+7 (900) 123-45-67"
	bad := "call me"
	assert.NoError(t, ValidatePhone(nil))
	assert.NoError(t, ValidatePhone(&empty))
	assert.NoError(t, ValidatePhone(&ok))
	assert.Error(t, ValidatePhone(&bad))
}

func TestBindingValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerValidators(v))

	type payload struct {
		Level    string `validate:"skill_level"`
		Location string `validate:"location_mode"`
		Rating   int    `validate:"rating"`
		Type     string `validate:"user_skill_type"`
	}

	assert.NoError(t, v.Struct(payload{Level: "", Location: "online", Rating: 5, Type: "offer"}))
	assert.Error(t, v.Struct(payload{Level: "guru", Location: "online", Rating: 5, Type: "offer"}))
	assert.Error(t, v.Struct(payload{Location: "moon", Rating: 5, Type: "want"}))
	assert.Error(t, v.Struct(payload{Rating: 0, Type: "want"}))
	assert.Error(t, v.Struct(payload{Rating: 3, Type: "maybe"}))
}
