package handler

import (
	"strconv"

	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService       service.StatsService
	leaderboardService service.LeaderboardService
}

func NewStatsHandler(statsService service.StatsService, leaderboardService service.LeaderboardService) *StatsHandler {
	return &StatsHandler{
		statsService:       statsService,
		leaderboardService: leaderboardService,
	}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.statsService.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": stats})
}

func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodAllTime)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.leaderboardService.Top(c.Request.Context(), period, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": entries, "period": period})
}
