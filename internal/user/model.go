package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "User not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "Email already exists")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "Invalid email or password")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "role must be user, owner or admin")
	ErrSignupRole         = apperror.New(http.StatusBadRequest, "role must be user or owner")
	ErrEmptyName          = apperror.New(http.StatusBadRequest, "full_name cannot be empty")
	ErrEmptyEmail         = apperror.New(http.StatusBadRequest, "email cannot be empty")
	ErrNothingToUpdate    = apperror.New(http.StatusBadRequest, "Nothing to update")
)

// User represents an account. Role is fixed at creation.
type User struct {
	ID           int64
	FullName     string
	Email        string
	Phone        *string
	PasswordHash string
	Role         string
	PhotoURL     *string
	CreatedAt    time.Time
}

// ProfileUpdate carries the optional profile fields; nil means "keep".
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Phone    *string
	PhotoURL *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil && u.PhotoURL == nil
}
