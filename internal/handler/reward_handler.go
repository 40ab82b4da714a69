package handler

import (
	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/apperror"
	"anoa.com/askhub/pkg/response"
	"anoa.com/askhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	service service.RewardService
}

func NewRewardHandler(service service.RewardService) *RewardHandler {
	return &RewardHandler{service: service}
}

func (h *RewardHandler) List(c *gin.Context) {
	rewards, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": rewards})
}

func (h *RewardHandler) Redeem(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	redemption, err := h.service.Redeem(c.Request.Context(), userID, req.RewardID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"data": redemption})
}
