package assistant

import (
	"net/http"

	"github.com/hopeIsCo0l/AnuTest/internal/rate_limiter"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
)

type askRequest struct {
	Message string `json:"message" binding:"required"`
}

type AssistantHandler struct {
	service *AssistantService
	limiter *rate_limiter.RateLimiter
}

func NewAssistantHandler(s *AssistantService, limiter *rate_limiter.RateLimiter) *AssistantHandler {
	return &AssistantHandler{service: s, limiter: limiter}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	limit := rate_limiter.Middleware(h.limiter, "Too many assistant requests. Try again later.")
	router.POST("/assistant/analyze", security.Authorize(roles.Staff), limit, h.Analyze)
	router.POST("/assistant/ask", security.Authorize(roles.Staff), limit, h.Ask)
}

func (h *AssistantHandler) Analyze(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Analyze(c.Request.Context()))
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Ask(c.Request.Context(), req.Message))
}
