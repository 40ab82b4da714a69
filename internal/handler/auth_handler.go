package handler

import (
	"net/http"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/apperror"
	"anoa.com/askhub/pkg/response"
	"anoa.com/askhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	result, err := h.service.Signup(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"data": result})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": result})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.service.GoogleLogin())
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Error(c, apperror.New(400, "missing authorization code", apperror.ErrBadRequest))
		return
	}

	result, err := h.service.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": result})
}
