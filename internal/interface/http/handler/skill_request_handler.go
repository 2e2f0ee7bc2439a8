package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/skillrequest"
	"github.com/skillswap/backend/internal/validation"
)

type SkillRequestHandler struct {
	createUC   *skillrequest.CreateRequestUseCase
	acceptUC   *skillrequest.AcceptRequestUseCase
	rejectUC   *skillrequest.RejectRequestUseCase
	completeUC *skillrequest.CompleteRequestUseCase
	cancelUC   *skillrequest.CancelRequestUseCase
	getUC      *skillrequest.GetRequestUseCase
	listUC     *skillrequest.ListRequestsUseCase
}

func NewSkillRequestHandler(
	createUC *skillrequest.CreateRequestUseCase,
	acceptUC *skillrequest.AcceptRequestUseCase,
	rejectUC *skillrequest.RejectRequestUseCase,
	completeUC *skillrequest.CompleteRequestUseCase,
	cancelUC *skillrequest.CancelRequestUseCase,
	getUC *skillrequest.GetRequestUseCase,
	listUC *skillrequest.ListRequestsUseCase,
) *SkillRequestHandler {
	return &SkillRequestHandler{
		createUC:   createUC,
		acceptUC:   acceptUC,
		rejectUC:   rejectUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		getUC:      getUC,
		listUC:     listUC,
	}
}

// CreateRequest POST /api/skills/:id/requests
func (h *SkillRequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := parseUUIDParam(c, "id", "некорректный ID навыка")
	if !ok {
		return
	}

	var req dto.CreateSkillRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	if err := validation.ValidateRequestMessage(req.Message); err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), skillrequest.CreateRequestInput{
		SenderID: userID,
		SkillID:  skillID,
		Message:  req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToSkillRequestResponse(created))
}

// ListRequests GET /api/requests?status=
func (h *SkillRequestHandler) ListRequests(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := valueobject.ParseStatusFilter(c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	lists, err := h.listUC.Execute(c.Request.Context(), userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestListsResponse(lists))
}

// GetRequest GET /api/requests/:id
func (h *SkillRequestHandler) GetRequest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	req, err := h.getUC.Execute(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillRequestResponse(req))
}

func (h *SkillRequestHandler) AcceptRequest(c *gin.Context) {
	h.transition(c, h.acceptUC.Execute)
}

func (h *SkillRequestHandler) RejectRequest(c *gin.Context) {
	h.transition(c, h.rejectUC.Execute)
}

func (h *SkillRequestHandler) CancelRequest(c *gin.Context) {
	h.transition(c, h.cancelUC.Execute)
}

func (h *SkillRequestHandler) CompleteRequest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	result, err := h.completeUC.Execute(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCompleteRequestResponse(result))
}

type transitionFunc func(ctx context.Context, requestID, actorID uuid.UUID) (*entity.SkillRequest, error)

func (h *SkillRequestHandler) transition(c *gin.Context, apply transitionFunc) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	updated, err := apply(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillRequestResponse(updated))
}
