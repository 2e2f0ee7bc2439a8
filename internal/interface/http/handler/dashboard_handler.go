package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/dashboard"
)

type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview GET /api/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	overview, err := h.uc.Overview(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDashboardResponse(overview))
}

// Stats GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	stats, err := h.uc.Stats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDashboardStatsResponse(stats))
}

// Recommended GET /api/dashboard/recommended
func (h *DashboardHandler) Recommended(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	skills, err := h.uc.Recommended(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSkillResponses(skills))
}
