package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[apperror.ErrorCode]int{
		apperror.ErrCodeNotFound:          http.StatusNotFound,
		apperror.ErrCodeForbidden:         http.StatusForbidden,
		apperror.ErrCodeValidation:        http.StatusBadRequest,
		apperror.ErrCodeSelfRequest:       http.StatusBadRequest,
		apperror.ErrCodeInvalidTransition: http.StatusConflict,
		apperror.ErrCodeInvalidState:      http.StatusConflict,
		apperror.ErrCodeDuplicateRequest:  http.StatusConflict,
		apperror.ErrCodeDuplicateReview:   http.StatusConflict,
		apperror.ErrCodeDatabaseError:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, apperror.New(code, "x").HTTPStatus, string(code))
	}
}

func TestDuplicateRequest_CarriesExistingID(t *testing.T) {
	err := apperror.DuplicateRequest("abc")

	assert.Equal(t, apperror.ErrCodeDuplicateRequest, err.Code)
	assert.Equal(t, "abc", err.Details[apperror.DetailExistingRequestID])
	assert.Nil(t, apperror.ErrDuplicateRequest.Details, "shared error must not be mutated")
	assert.True(t, errors.Is(err, apperror.ErrDuplicateRequest))
}

func TestHelpers_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("usecase: %w", apperror.ErrInvalidTransition)

	assert.True(t, apperror.IsInvalidTransition(wrapped))
	assert.False(t, apperror.IsNotFound(wrapped))
	assert.True(t, apperror.IsDuplicate(apperror.ErrDuplicateReview))
	assert.Equal(t, apperror.ErrorCode(""), apperror.CodeOf(errors.New("plain")))
}
