package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service court.Service
}

func NewHandler(service court.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var filter court.Filter
	if raw, present := c.GetQuery("club_id"); present {
		id, ok := request.ParseID(raw)
		if !ok {
			response.BadRequest(c, "club_id must be a number")
			return
		}
		filter.ClubID = &id
	}

	courts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtListResponse(courts))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid court id")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtDetailResponse(detail))
}

func (h *Handler) Create(c *gin.Context) {
	var body CourtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if body.ClubID == nil {
		response.Error(c, court.ErrNameRequired)
		return
	}

	ct, err := h.service.Create(c.Request.Context(), auth.MustIdentity(c), *body.ClubID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCourtResponse(ct))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid court id")
		return
	}

	var body CourtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	ct, err := h.service.Update(c.Request.Context(), auth.MustIdentity(c), uri.ID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid court id")
		return
	}

	ct, err := h.service.Delete(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, NewCourtResponse(ct))
}
