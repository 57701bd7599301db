package handler

import (
	"net/http"

	"cargoflow/internal/middleware"
	"cargoflow/internal/service"
	"cargoflow/pkg/pagination"
	"cargoflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type GoodsHandler struct {
	goodsService service.GoodsService
}

func NewGoodsHandler(goodsService service.GoodsService) *GoodsHandler {
	return &GoodsHandler{goodsService: goodsService}
}

func (h *GoodsHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Item intake lives under its container
	containers := router.Group("/api/containers")
	{
		containers.GET("/:id/items", middleware.RequireAnyUser(), h.ListContainerItems)
		containers.POST("/:id/items", middleware.RequireStaff(), h.AddItem)
		containers.POST("/:id/items/batch", middleware.RequireStaff(), h.AddItemsBatch)
	}

	items := router.Group("/api/items")
	{
		items.GET("", middleware.RequireAnyUser(), h.ListByShippingMark)
		items.PUT("/:id", middleware.RequireStaff(), h.UpdateItem)
		items.DELETE("/:id", middleware.RequireStaff(), h.DeleteItem)
	}
}

// ListContainerItems handles GET /api/containers/:id/items
// @Summary      List container items
// @Description  Lists all goods received into a container, each with its computed billing amount
// @Tags         goods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Container ID"
// @Success      200  {object}  response.Response{data=[]service.GoodsItemResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/containers/{id}/items [get]
func (h *GoodsHandler) ListContainerItems(c *gin.Context) {
	items, err := h.goodsService.ListByContainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// AddItem handles POST /api/containers/:id/items
// @Summary      Add goods item
// @Description  Records one goods item received into a container
// @Tags         goods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Container ID"
// @Param        payload  body      service.GoodsItemPayload  true  "Goods Item Payload"
// @Success      201      {object}  response.Response{data=service.GoodsItemResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/containers/{id}/items [post]
func (h *GoodsHandler) AddItem(c *gin.Context) {
	var req service.GoodsItemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.goodsService.AddItem(actorContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// AddItemsBatch handles POST /api/containers/:id/items/batch
// @Summary      Add goods items in batch
// @Description  Records several goods items received into a container in one request
// @Tags         goods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Container ID"
// @Param        payload  body      []service.GoodsItemPayload  true  "Goods Item Payloads"
// @Success      201      {object}  response.Response{data=[]service.GoodsItemResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/containers/{id}/items/batch [post]
func (h *GoodsHandler) AddItemsBatch(c *gin.Context) {
	var reqs []service.GoodsItemPayload
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	items, err := h.goodsService.AddItems(actorContext(c), c.Param("id"), reqs)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, items))
}

// ListByShippingMark handles GET /api/items?shipping_mark=...
// @Summary      List items by shipping mark
// @Description  Lists goods items across containers for one shipping mark
// @Tags         goods
// @Produce      json
// @Security     BearerAuth
// @Param        shipping_mark  query     string  true   "Shipping Mark"
// @Param        page           query     int     false  "Page number (default 1)"
// @Param        limit          query     int     false  "Number of items per page (default 20)"
// @Success      200            {object}  response.Response{data=object}
// @Failure      400            {object}  response.Response
// @Router       /api/items [get]
func (h *GoodsHandler) ListByShippingMark(c *gin.Context) {
	mark := c.Query("shipping_mark")
	if mark == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "shipping_mark query parameter is required"))
		return
	}

	params := pagination.Parse(c)
	items, total, err := h.goodsService.ListByShippingMark(c.Request.Context(), mark, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch items"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, "items", items, total, params.Page, params.Limit))
}

// UpdateItem handles PUT /api/items/:id
// @Summary      Update goods item
// @Tags         goods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Item ID"
// @Param        payload  body      service.UpdateGoodsItemRequest  true  "Update Item Payload"
// @Success      200      {object}  response.Response{data=service.GoodsItemResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/items/{id} [put]
func (h *GoodsHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateGoodsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.goodsService.UpdateItem(actorContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeleteItem handles DELETE /api/items/:id
// @Summary      Delete goods item
// @Tags         goods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [delete]
func (h *GoodsHandler) DeleteItem(c *gin.Context) {
	if err := h.goodsService.DeleteItem(actorContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Item deleted"))
}
