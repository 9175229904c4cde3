package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// AnalyticsController handles reporting endpoints
type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetOverview handles the platform-wide rollup
// @Summary Platform overview
// @Description Admin-only counters across users, clubs, events and certificates
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OverviewResponse "Overview retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /analytics/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	overview, err := c.analyticsService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, overview)
}

// GetMyInsights handles the caller's activity summary
// @Summary My activity insights
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInsightsResponse "Insights retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /analytics/me [get]
func (c *AnalyticsController) GetMyInsights(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	insights, err := c.analyticsService.UserInsights(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, insights)
}

// GetLeaderboard handles the campus activity leaderboard
// @Summary Campus leaderboard
// @Description Top users ranked by attendance, certificates and memberships
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LeaderboardEntry "Leaderboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /analytics/leaderboard [get]
func (c *AnalyticsController) GetLeaderboard(ctx *gin.Context) {
	leaderboard, err := c.analyticsService.Leaderboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, leaderboard)
}

// GetClubStats handles a single club's activity summary
// @Summary Club statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ClubStatsResponse "Statistics retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/stats [get]
func (c *AnalyticsController) GetClubStats(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.analyticsService.ClubStats(ctx.Request.Context(), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
