package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/notification"
)

type NotificationHandler struct {
	inbox *notification.Inbox
}

func NewNotificationHandler(inbox *notification.Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// List GET /api/notifications?filter=all|unread|read&limit=&offset=
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)
	filter := valueobject.NewNotificationReadFilter(c.Query("filter"))

	items, total, err := h.inbox.List(c.Request.Context(), userID, filter, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.ToNotificationResponses(items), total, limit, offset)
}

// Recent GET /api/notifications/recent
func (h *NotificationHandler) Recent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.inbox.Recent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToNotificationResponses(items))
}

// UnreadCount GET /api/notifications/unread/count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.inbox.CountUnread(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkAsRead PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "некорректный ID уведомления")
	if !ok {
		return
	}

	if err := h.inbox.MarkAsRead(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"read": true})
}

// MarkAllAsRead PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	n, err := h.inbox.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"marked": n})
}

// Delete DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "некорректный ID уведомления")
	if !ok {
		return
	}

	if err := h.inbox.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
