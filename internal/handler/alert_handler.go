package handler

import (
	"net/http"

	"cargoflow/internal/middleware"
	"cargoflow/internal/service"
	"cargoflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertService service.AlertService
}

func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/alerts/overdue", middleware.RequireStaff(), h.ListOverdue)
}

// ListOverdue handles GET /api/alerts/overdue
// @Summary      List overdue items
// @Description  Lists goods items sitting in a warehouse past the overdue threshold without being loaded
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.OverdueAlert}
// @Failure      500  {object}  response.Response
// @Router       /api/alerts/overdue [get]
func (h *AlertHandler) ListOverdue(c *gin.Context) {
	alerts, err := h.alertService.ListOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch overdue items"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, alerts))
}
