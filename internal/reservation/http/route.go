package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reservation routes. Only booked-slots is public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, userGate gin.HandlerFunc) {
	group := g.Group("/reservations")
	{
		group.GET("/booked-slots", h.BookedSlots)
		group.GET("", userGate, h.List)
		group.GET("/my", userGate, h.ListMine)
		group.GET("/:id", userGate, h.Get)
		group.POST("", userGate, h.Create)
		group.PUT("/:id", userGate, h.Update)
		group.DELETE("/:id", userGate, h.Delete)
	}
}
