package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service club.Service
}

func NewHandler(service club.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListClubsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "owner_id must be a positive integer")
		return
	}

	clubs, err := h.service.List(c.Request.Context(), club.Filter{OwnerID: req.OwnerID})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewClubListResponse(clubs))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid club id")
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewClubResponse(cl))
}

func (h *Handler) Create(c *gin.Context) {
	var body ClubBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cl, err := h.service.Create(c.Request.Context(), auth.MustIdentity(c), body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewClubResponse(cl))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid club id")
		return
	}

	var body ClubBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cl, err := h.service.Update(c.Request.Context(), auth.MustIdentity(c), uri.ID, body.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewClubResponse(cl))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid club id")
		return
	}

	cl, err := h.service.Delete(c.Request.Context(), auth.MustIdentity(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, NewClubResponse(cl))
}
