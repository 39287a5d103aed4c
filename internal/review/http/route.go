package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers review routes. Reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, userGate gin.HandlerFunc) {
	group := g.Group("/reviews")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", userGate, h.Create)
		group.PUT("/:id", userGate, h.Update)
		group.DELETE("/:id", userGate, h.Delete)
	}
}
