package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
)

type Handler struct {
	service slot.Service
}

func NewHandler(service slot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	courtID, ok := request.ParseID(c.Query("court_id"))
	if !ok {
		response.Error(c, slot.ErrCourtIDMissing)
		return
	}

	slots, err := h.service.List(c.Request.Context(), courtID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSlotListResponse(slots))
}

func (h *Handler) Availability(c *gin.Context) {
	courtID, ok := request.ParseID(c.Query("court_id"))
	if !ok {
		response.BadRequest(c, "court_id and date are required")
		return
	}
	date, err := slot.ParseDate(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.Availability(c.Request.Context(), courtID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAvailabilityResponse(items))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid slot id")
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body SlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if body.CourtID == nil {
		response.Error(c, slot.ErrRequired)
		return
	}

	s, err := h.service.Create(c.Request.Context(), auth.MustIdentity(c), *body.CourtID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewSlotResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid slot id")
		return
	}

	var body SlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	s, err := h.service.Update(c.Request.Context(), auth.MustIdentity(c), uri.ID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid slot id")
		return
	}

	s, err := h.service.Delete(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, NewSlotResponse(s))
}
