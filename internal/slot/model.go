package slot

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "Slot not found")
	ErrRequired       = apperror.New(http.StatusBadRequest, "court_id, time_from, time_to, price are required")
	ErrInvalidTime    = apperror.New(http.StatusBadRequest, "time must be HH:MM or HH:MM:SS")
	ErrInvalidRange   = apperror.New(http.StatusBadRequest, "time_to must be after time_from")
	ErrNegativePrice  = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrAlreadyExists  = apperror.New(http.StatusConflict, "Slot already exists for this court")
	ErrInvalidDate    = apperror.New(http.StatusBadRequest, "date must be YYYY-MM-DD")
	ErrCourtIDMissing = apperror.New(http.StatusBadRequest, "court_id is required")
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// TimeSlot is a daily window on one court. TimeFrom and TimeTo are HH:MM:SS.
type TimeSlot struct {
	ID        int64
	CourtID   int64
	TimeFrom  string
	TimeTo    string
	Price     float64
	IsActive  bool
	CreatedAt time.Time
}

// Availability is a slot annotated for one calendar date.
type Availability struct {
	TimeSlot
	IsAvailable bool
}

// Fields holds the writable columns. On update a nil field keeps the stored value.
type Fields struct {
	TimeFrom *string
	TimeTo   *string
	Price    *float64
	IsActive *bool
}

func (f Fields) columns() map[string]any {
	m := map[string]any{}
	if f.TimeFrom != nil {
		m["time_from"] = *f.TimeFrom
	}
	if f.TimeTo != nil {
		m["time_to"] = *f.TimeTo
	}
	if f.Price != nil {
		m["price"] = *f.Price
	}
	if f.IsActive != nil {
		m["is_active"] = *f.IsActive
	}
	return m
}

// ParseClock normalizes "HH:MM" or "HH:MM:SS" to "HH:MM:SS".
func ParseClock(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", ErrInvalidTime
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
