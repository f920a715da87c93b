// internal/app/router.go
package app

import (
	authHandler "mediahub-service/internal/handlers/auth"
	mediaHandler "mediahub-service/internal/handlers/media"
	"mediahub-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	MediaHandler   *mediaHandler.MediaHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.GET("/google", h.AuthHandler.GoogleLogin)
		auth.GET("/google/callback", h.AuthHandler.GoogleCallback)
		auth.GET("/current-user", h.AuthMiddleware.OptionalAuth(), h.AuthHandler.CurrentUser)
		auth.GET("/logout", h.AuthMiddleware.OptionalAuth(), h.AuthHandler.Logout)
	}

	// ==================== Media ====================
	media := api.Group("/media")
	media.Use(h.AuthMiddleware.RequireAuth())
	{
		media.GET("", h.MediaHandler.List)
		media.POST("", h.MediaHandler.Upload)
		media.DELETE("/:id", h.MediaHandler.Delete)
	}
}
