package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/catalog"
	"github.com/skillswap/backend/internal/validation"
)

type CatalogHandler struct {
	createUC   *catalog.CreateSkillUseCase
	updateUC   *catalog.UpdateSkillUseCase
	deleteUC   *catalog.DeleteSkillUseCase
	getUC      *catalog.GetSkillUseCase
	searchUC   *catalog.SearchSkillsUseCase
	categories *catalog.CategoryUseCases
}

func NewCatalogHandler(
	createUC *catalog.CreateSkillUseCase,
	updateUC *catalog.UpdateSkillUseCase,
	deleteUC *catalog.DeleteSkillUseCase,
	getUC *catalog.GetSkillUseCase,
	searchUC *catalog.SearchSkillsUseCase,
	categories *catalog.CategoryUseCases,
) *CatalogHandler {
	return &CatalogHandler{
		createUC:   createUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
		getUC:      getUC,
		searchUC:   searchUC,
		categories: categories,
	}
}

// ListSkills GET /api/skills
func (h *CatalogHandler) ListSkills(c *gin.Context) {
	categoryID, err := parseOptionalUUIDQuery(c, "category")
	if err != nil {
		response.BadRequest(c, "некорректный ID категории")
		return
	}

	in := catalog.SearchSkillsInput{
		Query:      c.Query("q"),
		CategoryID: categoryID,
		Level:      c.Query("level"),
		Location:   c.Query("location"),
		Sort:       c.Query("sort"),
		Limit:      parseIntQuery(c, "limit", catalog.DefaultPageSize),
		Offset:     parseIntQuery(c, "offset", 0),
	}
	skills, total, err := h.searchUC.Execute(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit := in.Limit
	switch {
	case limit <= 0:
		limit = catalog.DefaultPageSize
	case limit > catalog.MaxPageSize:
		limit = catalog.MaxPageSize
	}
	response.Paginated(c, dto.ToSkillResponses(skills), total, limit, max(in.Offset, 0))
}

// QuickSearch GET /api/skills/search?q=
func (h *CatalogHandler) QuickSearch(c *gin.Context) {
	skills, err := h.searchUC.QuickSearch(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSkillResponses(skills))
}

// GetSkill GET /api/skills/:id, авторизация необязательна.
func (h *CatalogHandler) GetSkill(c *gin.Context) {
	skillID, ok := parseUUIDParam(c, "id", "некорректный ID навыка")
	if !ok {
		return
	}

	detail, err := h.getUC.Execute(c.Request.Context(), skillID, viewerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillDetailResponse(detail))
}

// CreateSkill POST /api/skills
func (h *CatalogHandler) CreateSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	req, ok := bindSkill(c)
	if !ok {
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToSkillResponse(created))
}

// UpdateSkill PUT /api/skills/:id
func (h *CatalogHandler) UpdateSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := parseUUIDParam(c, "id", "некорректный ID навыка")
	if !ok {
		return
	}

	req, ok := bindSkill(c)
	if !ok {
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), skillID, userID, catalog.UpdateSkillInput{
		SkillInput: req.ToInput(),
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillResponse(updated))
}

// DeleteSkill DELETE /api/skills/:id
func (h *CatalogHandler) DeleteSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := parseUUIDParam(c, "id", "некорректный ID навыка")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), skillID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func bindSkill(c *gin.Context) (dto.SkillRequest, bool) {
	var req dto.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные навыка")
		return req, false
	}
	for _, err := range []error{
		validation.ValidateSkillTitle(req.Title),
		validation.ValidateSkillDescription(req.Description),
		validation.ValidateDuration(req.Duration),
	} {
		if err != nil {
			response.Error(c, err)
			return req, false
		}
	}
	return req, true
}

// ListCategories GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCategoryResponses(categories))
}

// GetCategory GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "некорректный ID категории")
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCategoryResponse(category))
}

// CreateCategory POST /api/categories, только для staff.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные категории")
		return
	}
	if err := validation.ValidateCategoryName(req.Name); err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), userID, req.Name, req.Description, req.Icon)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToCategoryResponse(category))
}

// DeleteCategory DELETE /api/categories/:id, только для staff.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "некорректный ID категории")
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
