package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/http/middleware"
	"github.com/skillswap/backend/internal/interface/http/response"
)

func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDValue, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, errors.New("userID не найден в контексте")
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("некорректный формат userID")
	}

	return userID, nil
}

// requireUser отвечает 401 сам, если пользователь не определён.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return uuid.Nil, false
	}
	return userID, true
}

// viewerID для анонимного запроса возвращает uuid.Nil.
func viewerID(c *gin.Context) uuid.UUID {
	userID, err := getUserID(c)
	if err != nil {
		return uuid.Nil
	}
	return userID
}

func parseUUIDParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func parseOptionalUUIDQuery(c *gin.Context, key string) (*uuid.UUID, error) {
	valueStr := c.Query(key)
	if valueStr == "" {
		return nil, nil
	}
	id, err := uuid.Parse(valueStr)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
