package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/message"
	"github.com/skillswap/backend/internal/validation"
)

type MessageHandler struct {
	postUC     *message.PostMessageUseCase
	listUC     *message.ListMessagesUseCase
	markReadUC *message.MarkIncomingReadUseCase
	unreadUC   *message.CountUnreadUseCase
}

func NewMessageHandler(
	postUC *message.PostMessageUseCase,
	listUC *message.ListMessagesUseCase,
	markReadUC *message.MarkIncomingReadUseCase,
	unreadUC *message.CountUnreadUseCase,
) *MessageHandler {
	return &MessageHandler{
		postUC:     postUC,
		listUC:     listUC,
		markReadUC: markReadUC,
		unreadUC:   unreadUC,
	}
}

// ListMessages GET /api/requests/:id/messages
// Открытие переписки помечает входящие сообщения прочитанными.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.listUC.Authorize(ctx, requestID, userID); err != nil {
		response.Error(c, err)
		return
	}
	// сначала отмечаем, чтобы ответ уже содержал is_read=true
	h.markReadUC.Execute(ctx, requestID, userID)

	messages, err := h.listUC.Execute(ctx, requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestMessageResponses(messages))
}

// PostMessage POST /api/requests/:id/messages
func (h *MessageHandler) PostMessage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	if err := validation.ValidateMessageContent(req.Content); err != nil {
		response.Error(c, err)
		return
	}

	msg, err := h.postUC.Execute(c.Request.Context(), requestID, userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRequestMessageResponse(msg))
}

// MarkRead POST /api/requests/:id/messages/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	marked := h.markReadUC.Execute(c.Request.Context(), requestID, userID)
	response.Success(c, gin.H{"marked": marked})
}

// UnreadCount GET /api/messages/unread/count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.unreadUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}
