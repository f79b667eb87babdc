package routes

import (
	"os"

	"github.com/hopeIsCo0l/AnuTest/internal/core/container"
	"github.com/hopeIsCo0l/AnuTest/internal/middleware"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const eventsPath = "/api/events"

// NewRouter builds the engine with the common middleware and every route.
func NewRouter(container *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(container.Log),
		middleware.RecoveryMiddleware(container.Log),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{eventsPath})),
	)

	RegisterUtilityRoutes(router, container)
	RegisterPublicRoutes(router, container)
	RegisterProtectedRoutes(router, container)
	return router
}

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(security.JWTMiddleware(container.Tokens))

	container.UserHandler.RegisterRoutes(protectedRoutes)
	container.ItemHandler.RegisterRoutes(protectedRoutes)
	container.StockHandler.RegisterRoutes(protectedRoutes)
	container.RecipeHandler.RegisterRoutes(protectedRoutes)
	container.ProductionHandler.RegisterRoutes(protectedRoutes)
	container.HistoryHandler.RegisterRoutes(protectedRoutes)
	container.AssistantHandler.RegisterRoutes(protectedRoutes)
	container.EventsHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine, container *container.Container) {
	router.GET("/health", middleware.HealthCheckMiddleware(container.SlotUsage))

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
		container.Log.Info("Route docs/index.html registered successfully.")
	} else {
		container.Log.Debug("OpenAPI document not found, /openapi.html not registered", zap.String("path", openapiFilePath))
	}
}
