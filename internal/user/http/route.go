package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers account routes: credentials under /auth, profile under /users.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authLimiter, userGate gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth", authLimiter)
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
	}

	// Authenticated Routes
	users := g.Group("/users", userGate)
	{
		users.GET("/me", h.Me)
		users.PUT("/me", h.UpdateMe)
	}
}
