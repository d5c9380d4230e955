package routes

import (
	"net/http"

	"conectacg_backend/internal/handlers"
	"conectacg_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Setup builds the gin engine with the shared middleware chain and mounts
// the versioned API.
func Setup(h *handlers.AppHandlers, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	h.RegisterAll(api)

	return router
}
