package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/skills/x/requests", nil)
	response.Error(c, err)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestError_DuplicateRequestCarriesLocation(t *testing.T) {
	w := respond(apperror.DuplicateRequest("42"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "/api/requests/42", w.Header().Get("Location"))
	body := decode(t, w)
	assert.Equal(t, "DUPLICATE_REQUEST", body.Error.Code)
	assert.Equal(t, "42", body.Error.Details["existing_request_id"])
}

func TestError_MasksInternalCause(t *testing.T) {
	w := respond(apperror.Wrap(errors.New("pq: password authentication failed"), apperror.ErrCodeDatabaseError, "не удалось создать заявку"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "DATABASE_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "pq")

	w = respond(errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, w).Error.Code)
}

func TestError_PassesDomainMessage(t *testing.T) {
	w := respond(apperror.ErrInvalidTransition)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.ErrInvalidTransition.Message, decode(t, w).Error.Message)
}
