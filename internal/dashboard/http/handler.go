package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	clubHttp "github.com/nekogravitycat/club-booking-backend/internal/club/http"
	courtHttp "github.com/nekogravitycat/club-booking-backend/internal/court/http"
	"github.com/nekogravitycat/club-booking-backend/internal/dashboard"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
	reservationHttp "github.com/nekogravitycat/club-booking-backend/internal/reservation/http"
)

type OverviewResponse struct {
	Club         *clubHttp.ClubResponse                `json:"club"`
	Clubs        []clubHttp.ClubResponse               `json:"clubs"`
	Courts       []courtHttp.CourtListItem             `json:"courts"`
	Reservations []reservationHttp.ReservationListItem `json:"reservations"`
}

func NewOverviewResponse(o *dashboard.Overview) OverviewResponse {
	resp := OverviewResponse{
		Clubs:        clubHttp.NewClubListResponse(o.Clubs),
		Courts:       courtHttp.NewCourtListResponse(o.Courts),
		Reservations: reservationHttp.NewReservationListResponse(o.Reservations),
	}
	if o.Club != nil {
		c := clubHttp.NewClubResponse(o.Club)
		resp.Club = &c
	}
	return resp
}

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Overview(c *gin.Context) {
	o, err := h.service.Overview(c.Request.Context(), auth.MustIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOverviewResponse(o))
}

// RegisterRoutes mounts the dashboard behind ownerOnly, which must admit the
// owner role and nothing else.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, ownerOnly gin.HandlerFunc) {
	g.GET("/owner/dashboard", ownerOnly, h.Overview)
}
