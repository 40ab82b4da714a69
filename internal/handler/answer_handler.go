package handler

import (
	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/apperror"
	"anoa.com/askhub/pkg/response"
	"anoa.com/askhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnswerHandler struct {
	service service.AnswerService
}

func NewAnswerHandler(service service.AnswerService) *AnswerHandler {
	return &AnswerHandler{service: service}
}

func (h *AnswerHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	answer, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"data": answer})
}

func (h *AnswerHandler) ListByQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Error(c, apperror.New(400, "invalid question id", apperror.ErrBadRequest))
		return
	}

	answers, err := h.service.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": answers})
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(400, "invalid answer id", apperror.ErrBadRequest))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "answer deleted"})
}
