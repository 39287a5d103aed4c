package http

import (
	"strings"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
)

// UserResponse is the public shape of an account; the password hash never leaves the service.
type UserResponse struct {
	ID        int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	PhotoURL  *string   `json:"photo_url"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		PhotoURL:  u.PhotoURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// SignupRequest registers a user or owner. Admins are provisioned out of band.
type SignupRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     string  `json:"role"`
}

// signupRole normalises the requested role; ok is false for anything but user or owner.
func (r SignupRequest) signupRole() (role string, ok bool) {
	role = strings.ToLower(strings.TrimSpace(r.Role))
	switch role {
	case "":
		return auth.RoleUser, true
	case auth.RoleUser, auth.RoleOwner:
		return role, true
	}
	return "", false
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	PhotoURL *string `json:"photo_url"`
}
