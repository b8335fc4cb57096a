package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
)

type DashboardController struct {
	useCase pin.DashboardUseCase
}

func NewDashboardController(useCase pin.DashboardUseCase) *DashboardController {
	return &DashboardController{useCase: useCase}
}

func (c *DashboardController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard/stats", c.stats)
}

func (c *DashboardController) stats(ctx *gin.Context) {
	stats, err := c.useCase.Stats(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to load dashboard stats"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
