package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/services"
	"github.com/acadex/acadex/internal/middleware"
)

// StatsController serves tenant-scoped reporting counters
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// Overview returns the tenant dashboard counters
// @Summary Stats overview
// @Description Returns tenant-scoped achievement counts, teacher workloads and department membership
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Overview"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/overview [get]
func (c *StatsController) Overview(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	stats, err := c.statsService.Overview(ctx.Request.Context(), tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
