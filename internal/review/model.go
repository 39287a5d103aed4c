package review

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "Review not found")
	ErrNotFoundOrNotYours = apperror.New(http.StatusNotFound, "Review not found or not yours")
	ErrRequired           = apperror.New(http.StatusBadRequest, "club_id, stars, comment are required")
	ErrInvalidStars       = apperror.New(http.StatusBadRequest, "stars must be between 1 and 5")
	ErrNothingToUpdate    = apperror.New(http.StatusBadRequest, "Send stars and/or comment to update")
	ErrUnknownAuthor      = apperror.New(http.StatusBadRequest, "Caller does not match a user account")
)

const (
	MinStars = 1
	MaxStars = 5
)

// Image is a review picture as aggregated by the list query.
type Image struct {
	ID       int64  `json:"image_id"`
	URL      string `json:"image_url"`
	Position int    `json:"position"`
}

type Review struct {
	ID         int64
	ClubID     int64
	UserID     int64
	AuthorName *string
	Stars      int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Images     []Image
}

// Fields holds the writable columns. On update a nil field keeps the stored value.
type Fields struct {
	Stars   *int
	Comment *string
}

func (f Fields) IsEmpty() bool {
	return f.Stars == nil && f.Comment == nil
}
