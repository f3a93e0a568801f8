package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitplan_backend/internal/handlers"
)

// RegisterRoutes wires every handler group under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.PlanHandler.RegisterRoutes(api)
		appHandlers.FormHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}
}
