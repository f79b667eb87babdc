package items

import (
	"net/http"

	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	service *ItemService
}

func NewItemHandler(s *ItemService) *ItemHandler {
	return &ItemHandler{service: s}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", security.Authorize(roles.Staff), h.RetrieveItemList)
	router.GET("/items/:id", security.Authorize(roles.Staff), h.RetrieveItem)
	router.POST("/items", security.Authorize(roles.Admin), h.CreateItem)
	router.PUT("/items/:id", security.Authorize(roles.Admin), h.UpdateItem)
	router.PATCH("/items/:id/cost", security.Authorize(roles.Admin), h.UpdateCost)
	router.DELETE("/items/:id", security.Authorize(roles.Admin), h.DeleteItem)
}

func (h *ItemHandler) RetrieveItem(c *gin.Context) {
	item, err := h.service.Get(c.Param("id"))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to fetch item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) RetrieveItemList(c *gin.Context) {
	var query retrieveItemListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := ListFilter{Search: query.Search, LowStockOnly: query.LowStock}
	if query.Category != "" {
		category, err := metadata.NewCategory(query.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category", "details": err.Error()})
			return
		}
		filter.Category = category
	}

	c.JSON(http.StatusOK, h.service.List(filter))
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	category, err := metadata.NewCategory(req.Category)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item category", "details": err.Error()})
		return
	}
	unit, err := metadata.NewUnit(req.Unit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid unit", "details": err.Error()})
		return
	}

	item, err := h.service.AddItem(security.ActorName(c), NewItem{
		Name:        req.Name,
		Category:    category,
		Quantity:    orZero(req.Quantity),
		Unit:        unit,
		MinStock:    orZero(req.MinStock),
		CostPerUnit: orZero(req.CostPerUnit),
	})
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Failed to create item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	unit, err := metadata.NewUnit(req.Unit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid unit", "details": err.Error()})
		return
	}
	var category metadata.Category
	if req.Category != "" {
		if category, err = metadata.NewCategory(req.Category); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item category", "details": err.Error()})
			return
		}
	}

	item, err := h.service.UpdateItem(security.ActorName(c), models.InventoryItem{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    category,
		Quantity:    orZero(req.Quantity),
		Unit:        unit,
		MinStock:    orZero(req.MinStock),
		CostPerUnit: orZero(req.CostPerUnit),
	})
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to update item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateCost(c *gin.Context) {
	var req updateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CostPerUnit == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	item, err := h.service.UpdateCost(security.ActorName(c), c.Param("id"), *req.CostPerUnit)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to update cost", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(security.ActorName(c), c.Param("id")); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Failed to delete item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
