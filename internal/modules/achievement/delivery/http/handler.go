package handler

import (
	"net/http"

	achievement "anoa.com/ecoinsight/internal/modules/achievement/service"
	"anoa.com/ecoinsight/pkg/response"
	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementService achievement.AchievementService
}

func NewAchievementHandler(achievementService achievement.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.achievementService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
