package handler

import (
	"net/http"

	"anoa.com/ecoinsight/internal/modules/reward/dto"
	reward "anoa.com/ecoinsight/internal/modules/reward/service"
	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/response"
	"anoa.com/ecoinsight/pkg/validator"
	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewardService reward.RewardService
}

func NewRewardHandler(rewardService reward.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

func (h *RewardHandler) Redeem(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	res, err := h.rewardService.Redeem(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *RewardHandler) ListRewards(c *gin.Context) {
	c.JSON(http.StatusOK, h.rewardService.Catalog())
}
