package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/club-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(reservation.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, reservation.ErrInvalidDate
	}
	return t, nil
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), auth.MustIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationListResponse(items))
}

func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), auth.MustIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationListResponse(items))
}

func (h *Handler) BookedSlots(c *gin.Context) {
	courtID, ok := request.ParseID(c.Query("court_id"))
	if !ok || c.Query("date") == "" {
		response.BadRequest(c, "court_id and date are required")
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	ids, err := h.service.BookedSlots(c.Request.Context(), courtID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid reservation id")
		return
	}

	item, err := h.service.Get(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationListItem(item))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.DateISO == "" {
		response.Error(c, reservation.ErrRequired)
		return
	}
	date, err := parseDate(req.DateISO)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), auth.MustIdentity(c), reservation.CreateRequest{
		ClubID:       req.ClubID,
		CourtID:      req.CourtID,
		SlotID:       req.SlotID,
		Date:         date,
		UserID:       req.UserID,
		BookedByName: req.BookedByName,
		Phone:        req.Phone,
		Player1:      req.Player1,
		Player2:      req.Player2,
		Player3:      req.Player3,
		Player4:      req.Player4,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid reservation id")
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	update := reservation.UpdateRequest{SlotID: req.SlotID}
	if req.DateISO != nil && *req.DateISO != "" {
		date, err := parseDate(*req.DateISO)
		if err != nil {
			response.Error(c, err)
			return
		}
		update.Date = &date
	}

	res, err := h.service.Update(c.Request.Context(), auth.MustIdentity(c), uri.ID, update)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid reservation id")
		return
	}

	res, err := h.service.Delete(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, NewReservationResponse(res))
}
