package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

// Handler serves one image collection. parentField is both the list query
// parameter and the JSON key of the parent id.
type Handler struct {
	service     gallery.Service
	parentField string
}

func NewHandler(service gallery.Service, kind gallery.Kind) *Handler {
	return &Handler{service: service, parentField: kind.ParentColumn}
}

func (h *Handler) List(c *gin.Context) {
	parentID, ok := request.ParseID(c.Query(h.parentField))
	if !ok {
		response.BadRequest(c, h.parentField+" is required")
		return
	}

	images, err := h.service.List(c.Request.Context(), parentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newImageListResponse(h.parentField, images))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	img, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newImageResponse(h.parentField, img))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	parentID, ok := req.parentID(h.parentField)
	if !ok || req.URL == nil {
		response.BadRequest(c, h.parentField+" and image_url are required")
		return
	}

	img, err := h.service.Create(c.Request.Context(), auth.MustIdentity(c), parentID, gallery.Fields{
		URL:      req.URL,
		Position: req.Position,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, newImageResponse(h.parentField, img))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	img, err := h.service.Update(c.Request.Context(), auth.MustIdentity(c), uri.ID, gallery.Fields{
		URL:      req.URL,
		Position: req.Position,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newImageResponse(h.parentField, img))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	img, err := h.service.Delete(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, newImageResponse(h.parentField, img))
}
