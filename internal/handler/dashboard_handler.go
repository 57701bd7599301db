package handler

import (
	"net/http"

	"cargoflow/internal/middleware"
	"cargoflow/internal/service"
	"cargoflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard/summary", middleware.RequireStaff(), h.GetSummary)
}

// GetSummary handles GET /api/dashboard/summary
// @Summary      Dashboard summary
// @Description  Returns operational counts and the outstanding invoiced amount
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.DashboardSummary}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build dashboard summary"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
