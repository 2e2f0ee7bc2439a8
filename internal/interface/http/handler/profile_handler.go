package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillswap/backend/internal/interface/http/dto"
	"github.com/skillswap/backend/internal/interface/http/response"
	"github.com/skillswap/backend/internal/usecase/profile"
	"github.com/skillswap/backend/internal/validation"
)

// avatarFormField имя поля multipart формы с файлом аватара.
const avatarFormField = "avatar"

type ProfileHandler struct {
	getUC      *profile.GetProfileUseCase
	updateUC   *profile.UpdateProfileUseCase
	avatarUC   *profile.UploadAvatarUseCase
	userSkills *profile.UserSkillUseCases
}

func NewProfileHandler(
	getUC *profile.GetProfileUseCase,
	updateUC *profile.UpdateProfileUseCase,
	avatarUC *profile.UploadAvatarUseCase,
	userSkills *profile.UserSkillUseCases,
) *ProfileHandler {
	return &ProfileHandler{
		getUC:      getUC,
		updateUC:   updateUC,
		avatarUC:   avatarUC,
		userSkills: userSkills,
	}
}

// GetPublicProfile GET /api/users/:username
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	p, err := h.getUC.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(p, p.User.ID == viewerID(c)))
}

// GetMyProfile GET /api/profile
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	p, err := h.getUC.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(p, true))
}

// UpdateProfile PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные профиля")
		return
	}
	for _, err := range []error{
		validation.ValidateName("имя", req.FirstName),
		validation.ValidateName("фамилия", req.LastName),
		validation.ValidateBio(req.Bio),
		validation.ValidateLocation(req.Location),
		validation.ValidatePhone(req.Phone),
	} {
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	in, err := req.ToInput()
	if err != nil {
		response.BadRequest(c, "дата рождения должна быть в формате ГГГГ-ММ-ДД")
		return
	}

	user, err := h.updateUC.Execute(c.Request.Context(), userID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOwnUserResponse(user))
}

// UploadAvatar POST /api/profile/avatar, multipart поле "avatar".
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(avatarFormField)
	if err != nil {
		response.BadRequest(c, "файл аватара обязателен")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	user, err := h.avatarUC.Execute(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOwnUserResponse(user))
}

// AddUserSkill POST /api/profile/skills
func (h *ProfileHandler) AddUserSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.AddUserSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные навыка")
		return
	}
	if err := validation.ValidateUserSkillName(req.SkillName); err != nil {
		response.Error(c, err)
		return
	}

	us, err := h.userSkills.Add(c.Request.Context(), userID, req.SkillName, req.SkillType, req.ProficiencyLevel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToUserSkillResponse(us))
}

// RemoveUserSkill DELETE /api/profile/skills/:id
func (h *ProfileHandler) RemoveUserSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "некорректный ID навыка")
	if !ok {
		return
	}

	if err := h.userSkills.Remove(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
