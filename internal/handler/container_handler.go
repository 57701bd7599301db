package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"cargoflow/internal/middleware"
	"cargoflow/internal/service"
	"cargoflow/pkg/pagination"
	"cargoflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContainerHandler struct {
	containerService service.ContainerService
	goodsService     service.GoodsService
}

func NewContainerHandler(containerService service.ContainerService, goodsService service.GoodsService) *ContainerHandler {
	return &ContainerHandler{containerService: containerService, goodsService: goodsService}
}

func (h *ContainerHandler) RegisterRoutes(router *gin.RouterGroup) {
	containers := router.Group("/api/containers")
	{
		// Reads are open to every authenticated role; customers track their cargo.
		containers.GET("", middleware.RequireAnyUser(), h.ListContainers)
		containers.GET("/:id", middleware.RequireAnyUser(), h.GetContainer)

		containers.POST("", middleware.RequireStaff(), h.CreateContainer)
		containers.PUT("/:id", middleware.RequireStaff(), h.UpdateContainer)
		containers.PUT("/:id/pricing", middleware.RequireStaff(), h.UpdatePricing)
		containers.DELETE("/:id", middleware.RequireRole(middleware.RoleAdmin), h.DeleteContainer)
		containers.GET("/:id/manifest.csv", middleware.RequireStaff(), h.ExportManifest)
	}
}

// ListContainers handles GET /api/containers
// @Summary      List containers
// @Description  Retrieves a paginated list of cargo containers with optional filters
// @Tags         containers
// @Produce      json
// @Security     BearerAuth
// @Param        cargo_leg           query     string  false  "Filter by cargo leg (SEA or AIR)"
// @Param        warehouse_location  query     string  false  "Filter by warehouse location (CHINA or GHANA)"
// @Param        status              query     string  false  "Filter by status"
// @Param        search              query     string  false  "Search by container number"
// @Param        page                query     int     false  "Page number (default 1)"
// @Param        limit               query     int     false  "Number of items per page (default 20)"
// @Success      200                 {object}  response.Response{data=object}
// @Failure      500                 {object}  response.Response
// @Router       /api/containers [get]
func (h *ContainerHandler) ListContainers(c *gin.Context) {
	params := pagination.Parse(c)

	containers, total, err := h.containerService.ListContainers(c.Request.Context(), service.ContainerFilter{
		CargoLeg:          c.Query("cargo_leg"),
		WarehouseLocation: c.Query("warehouse_location"),
		Status:            c.Query("status"),
		Search:            c.Query("search"),
		Page:              params.Page,
		Limit:             params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch containers"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, "containers", containers, total, params.Page, params.Limit))
}

// GetContainer handles GET /api/containers/:id
// @Summary      Get container by ID
// @Tags         containers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Container ID"
// @Success      200  {object}  response.Response{data=service.ContainerResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/containers/{id} [get]
func (h *ContainerHandler) GetContainer(c *gin.Context) {
	container, err := h.containerService.GetContainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, container))
}

// CreateContainer handles POST /api/containers
// @Summary      Create container
// @Description  Registers a new cargo container in a warehouse
// @Tags         containers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateContainerRequest  true  "Create Container Payload"
// @Success      201      {object}  response.Response{data=service.ContainerResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/containers [post]
func (h *ContainerHandler) CreateContainer(c *gin.Context) {
	var req service.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	container, err := h.containerService.CreateContainer(actorContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, container))
}

// UpdateContainer handles PUT /api/containers/:id
// @Summary      Update container
// @Description  Updates container fields and moves it through the status pipeline
// @Tags         containers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Container ID"
// @Param        payload  body      service.UpdateContainerRequest  true  "Update Container Payload"
// @Success      200      {object}  response.Response{data=service.ContainerResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/containers/{id} [put]
func (h *ContainerHandler) UpdateContainer(c *gin.Context) {
	var req service.UpdateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	container, err := h.containerService.UpdateContainer(actorContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, container))
}

// UpdatePricing handles PUT /api/containers/:id/pricing
// @Summary      Set container pricing
// @Description  Sets the exchange rate and unit rate used to bill the container's goods
// @Tags         containers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Container ID"
// @Param        payload  body      service.UpdatePricingRequest  true  "Pricing Payload"
// @Success      200      {object}  response.Response{data=service.ContainerResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/containers/{id}/pricing [put]
func (h *ContainerHandler) UpdatePricing(c *gin.Context) {
	var req service.UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	container, err := h.containerService.UpdatePricing(actorContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, container))
}

// DeleteContainer handles DELETE /api/containers/:id
// @Summary      Delete container
// @Tags         containers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Container ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/containers/{id} [delete]
func (h *ContainerHandler) DeleteContainer(c *gin.Context) {
	if err := h.containerService.DeleteContainer(actorContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Container deleted"))
}

// ExportManifest handles GET /api/containers/:id/manifest.csv
// @Summary      Export container manifest
// @Description  Downloads the container's goods-received manifest as a CSV file
// @Tags         containers
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id   path      string  true  "Container ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /api/containers/{id}/manifest.csv [get]
func (h *ContainerHandler) ExportManifest(c *gin.Context) {
	var buf bytes.Buffer
	fileName, err := h.goodsService.ExportManifestCSV(c.Request.Context(), c.Param("id"), &buf)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
