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

type VoteHandler struct {
	service service.VoteService
}

func NewVoteHandler(service service.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

func (h *VoteHandler) CastVote(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	result, err := h.service.CastVote(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": result})
}

func (h *VoteHandler) GetVotes(c *gin.Context) {
	targetKind := c.Query("target_kind")
	if targetKind != "question" && targetKind != "answer" {
		response.Error(c, apperror.New(400, "target_kind must be question or answer", apperror.ErrBadRequest))
		return
	}

	targetID, err := uuid.Parse(c.Query("target_id"))
	if err != nil {
		response.Error(c, apperror.New(400, "invalid target id", apperror.ErrBadRequest))
		return
	}

	var viewerID *uuid.UUID
	if userID, err := response.GetUserID(c); err == nil {
		viewerID = &userID
	}

	result, err := h.service.GetVotes(c.Request.Context(), viewerID, targetKind, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": result})
}
