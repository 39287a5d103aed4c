package facility

import (
	"net/http"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "Facility not found")
	ErrNotFoundOrNotOwned = apperror.New(http.StatusNotFound, "Facility not found or not your club")
	ErrRequired           = apperror.New(http.StatusBadRequest, "club_id and label are required")
)

// Facility is an amenity advertised by a club, e.g. parking or showers.
type Facility struct {
	ID     int64
	ClubID int64
	Icon   *string
	Label  string
}

type Fields struct {
	Icon  *string
	Label *string
}

func (f Fields) columns() map[string]any {
	m := map[string]any{}
	if f.Icon != nil {
		m["icon"] = *f.Icon
	}
	if f.Label != nil {
		m["label"] = *f.Label
	}
	return m
}
