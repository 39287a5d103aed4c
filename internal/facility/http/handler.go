package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service facility.Service
}

func NewHandler(service facility.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	clubID, ok := request.ParseID(c.Query("club_id"))
	if !ok {
		response.BadRequest(c, "club_id is required")
		return
	}

	items, err := h.service.List(c.Request.Context(), clubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewFacilityListResponse(items))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid facility id")
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewFacilityResponse(f))
}

func (h *Handler) Create(c *gin.Context) {
	var body FacilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	f, err := h.service.Create(c.Request.Context(), auth.MustIdentity(c), body.ClubID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewFacilityResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid facility id")
		return
	}

	var body FacilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	f, err := h.service.Update(c.Request.Context(), auth.MustIdentity(c), uri.ID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewFacilityResponse(f))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid facility id")
		return
	}

	f, err := h.service.Delete(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, NewFacilityResponse(f))
}
