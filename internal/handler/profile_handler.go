package handler

import (
	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/apperror"
	"anoa.com/askhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": user})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, apperror.New(400, "invalid profile payload", apperror.ErrInvalidInput))
		return
	}

	// Multipart avatar upload is optional.
	var avatar *service.AvatarFile
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, apperror.New(400, "failed to read avatar file", apperror.ErrBadRequest))
			return
		}
		defer file.Close()
		avatar = &service.AvatarFile{Reader: file, FileName: fileHeader.Filename}
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": user})
}
