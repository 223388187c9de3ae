package router

import (
	"net/http"

	"code-showcase/internal/adapter/gin/handler"
	"code-showcase/internal/adapter/gin/middleware"
	"code-showcase/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(dataHandler *handler.DataHandler, serviceName string, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	api := router.Group("/api")
	{
		api.GET("/data", dataHandler.GetData)
	}

	return router
}
