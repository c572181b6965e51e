package controller

import (
	"strconv"
	"training_platform_backend/internal/service"
	"training_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	leaderboard *service.LeaderboardService
}

func NewDashboardController(leaderboard *service.LeaderboardService) *DashboardController {
	return &DashboardController{leaderboard: leaderboard}
}

type leaderboardResponse struct {
	Entries []service.LeaderboardEntry `json:"entries"`
	MyRank  int                        `json:"myRank,omitempty"`
}

// Leaderboard godoc
// @Summary Top users by points, with the caller's own rank
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of entries (default 10)"
// @Success 200 {object} util.Response{data=leaderboardResponse}
// @Router /api/leaderboard [get]
func (ctl *DashboardController) Leaderboard(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := ctl.leaderboard.Top(limit)
	if err != nil {
		handleError(c, err)
		return
	}

	util.Success(c, leaderboardResponse{
		Entries: entries,
		MyRank:  ctl.leaderboard.Rank(claims.UserID),
	})
}
