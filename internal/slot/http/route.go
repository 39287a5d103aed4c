package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers slot routes. Reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, ownerGate gin.HandlerFunc) {
	group := g.Group("/slots")
	{
		group.GET("", h.List)
		group.GET("/availability", h.Availability)
		group.GET("/:id", h.Get)
		group.POST("", ownerGate, h.Create)
		group.PUT("/:id", ownerGate, h.Update)
		group.DELETE("/:id", ownerGate, h.Delete)
	}
}
