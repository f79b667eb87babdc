package stocks

import (
	"net/http"

	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	service *StockService
}

func NewStockHandler(s *StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/items/:id/restock", security.Authorize(roles.Staff), h.Restock)
	router.GET("/stocks/low", security.Authorize(roles.Staff), h.GetLowStock)
	router.GET("/dashboard", security.Authorize(roles.Staff), h.GetDashboard)
	router.POST("/admin/reset", security.Authorize(roles.Admin), h.ResetSystem)
}

func (h *StockHandler) Restock(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	item, err := h.service.Restock(security.ActorName(c), c.Param("id"), *req.Amount)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to restock item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) GetLowStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.LowStock())
}

func (h *StockHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Dashboard())
}

func (h *StockHandler) ResetSystem(c *gin.Context) {
	if err := h.service.ResetSystem(security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to reset system"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "System reset to factory defaults."})
}
