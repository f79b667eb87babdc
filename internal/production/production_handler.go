package production

import (
	"net/http"

	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
)

type ProductionHandler struct {
	service *ProductionService
}

func NewProductionHandler(s *ProductionService) *ProductionHandler {
	return &ProductionHandler{service: s}
}

func (h *ProductionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/production/batches", security.Authorize(roles.Staff), h.GetActiveBatches)
	router.GET("/production/plan", security.Authorize(roles.Staff), h.GetPlan)
	router.POST("/production/batches", security.Authorize(roles.Staff), h.StartProduction)
	router.POST("/production/batches/:id/finish", security.Authorize(roles.Staff), h.FinishBatch)
}

func (h *ProductionHandler) GetActiveBatches(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ActiveBatches())
}

func (h *ProductionHandler) GetPlan(c *gin.Context) {
	var query PlanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if query.Quantity == 0 {
		query.Quantity = 1
	}

	plan, err := h.service.Plan(query.ProductID, query.Quantity)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *ProductionHandler) StartProduction(c *gin.Context) {
	var req StartProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := h.service.StartProduction(c.Request.Context(), security.ActorName(c), req.ProductID, req.Quantity, req.EstimatedCost)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to start production"})
		return
	}

	c.JSON(resultStatus(result, http.StatusCreated), result)
}

func (h *ProductionHandler) FinishBatch(c *gin.Context) {
	result, err := h.service.FinishBatch(c.Request.Context(), security.ActorName(c), c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to finish batch", "details": err.Error()})
		return
	}

	c.JSON(resultStatus(result, http.StatusOK), result)
}

func resultStatus(result Result, success int) int {
	if result.Success {
		return success
	}
	switch result.Reason {
	case custom_error.ReasonNoSlotAvailable:
		return http.StatusConflict
	case custom_error.ReasonNotFound:
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}
