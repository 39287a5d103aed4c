package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
)

type UserHandler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewUserHandler(service user.Service, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{
		service:    service,
		jwtManager: jwtManager,
	}
}

//
// POST /api/auth/signup
//

func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "full_name, email, password are required")
		return
	}
	role, ok := req.signupRole()
	if !ok {
		response.Error(c, user.ErrSignupRole)
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, u)
}

//
// POST /api/auth/login
//

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	u, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, u)
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, u *user.User) {
	token, err := h.jwtManager.Issue(auth.Identity{Role: u.Role, UserID: u.ID, HasUserID: true})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(status, AuthResponse{User: NewUserResponse(u), Token: token})
}

//
// GET /api/users/me
//

func (h *UserHandler) Me(c *gin.Context) {
	id := auth.MustIdentity(c)

	u, err := h.service.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

//
// PUT /api/users/me
//

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	id := auth.MustIdentity(c)
	u, err := h.service.UpdateProfile(c.Request.Context(), id.UserID, user.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}
