package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/file"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
	maxBytes    int64
}

func NewHandler(fileService file.Service, maxBytes int64) *Handler {
	return &Handler{
		fileService: fileService,
		maxBytes:    maxBytes,
	}
}

// Upload stores the multipart field "file" under the ?folder= hint.
func (h *Handler) Upload(c *gin.Context) {
	if c.Request.ContentLength > h.maxBytes+(1<<20) {
		response.Error(c, file.ErrFileTooLarge)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, file.ErrFileRequired)
		return
	}
	if fileHeader.Size > h.maxBytes {
		response.Error(c, file.ErrFileTooLarge)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, file.ErrFileRequired)
		return
	}
	defer src.Close()

	up, err := h.fileService.Upload(c.Request.Context(), src, c.Query("folder"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{
		URL:          up.URL(),
		ThumbnailURL: up.ThumbnailURL(),
	})
}

// ServeFile streams a stored file by its path below /uploads.
func (h *Handler) ServeFile(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("filepath"), "/")
	if p == "" {
		response.Error(c, file.ErrNotFound)
		return
	}

	stream, err := h.fileService.Open(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	contentType := mime.TypeByExtension(path.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		slog.WarnContext(c.Request.Context(), "file stream interrupted", slog.String("path", p), slog.Any("error", err))
	}
}
