package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the upload endpoint on the API group.
func RegisterRoutes(g *gin.RouterGroup, handler *Handler, userGate gin.HandlerFunc) {
	g.POST("/upload", userGate, handler.Upload)
}

// RegisterFileServer serves stored uploads. It lives outside /api so the
// returned relative URLs resolve directly.
func RegisterFileServer(r gin.IRouter, handler *Handler) {
	r.GET("/uploads/*filepath", handler.ServeFile)
}
