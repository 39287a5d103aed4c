package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts an image collection at path. Reads are public; writes
// go through gate.
func RegisterRoutes(g *gin.RouterGroup, path string, h *Handler, gate gin.HandlerFunc) {
	group := g.Group(path)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", gate, h.Create)
		group.PUT("/:id", gate, h.Update)
		group.DELETE("/:id", gate, h.Delete)
	}
}
