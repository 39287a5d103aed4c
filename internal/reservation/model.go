package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound               = apperror.New(http.StatusNotFound, "Reservation not found")
	ErrRequired               = apperror.New(http.StatusBadRequest, "club_id, court_id, slot_id, date_iso are required")
	ErrInvalidDate            = apperror.New(http.StatusBadRequest, "date_iso must be YYYY-MM-DD")
	ErrInvalidRelation        = apperror.New(http.StatusBadRequest, "Invalid club/court/slot relation")
	ErrSlotNotOnCourt         = apperror.New(http.StatusBadRequest, "slot_id is not an active slot of this court")
	ErrNothingToUpdate        = apperror.New(http.StatusBadRequest, "Send date_iso and/or slot_id to update")
	ErrInvalidForeignKey      = apperror.New(http.StatusBadRequest, "Invalid foreign key (club/court/slot/user)")
	ErrNotYours               = apperror.New(http.StatusForbidden, "Not your reservation")
	ErrNotYourClubReservation = apperror.New(http.StatusForbidden, "Not your club reservation")
	ErrAlreadyBooked          = apperror.New(http.StatusConflict, "This slot is already booked for that date")

	// errBookingIDTaken signals a booking reference collision; Create retries on it.
	errBookingIDTaken = apperror.New(http.StatusConflict, "booking reference already used")
)

const (
	StatusActive = "Active"

	// DateLayout is the wire format of date_iso.
	DateLayout = "2006-01-02"

	// maxBookingIDAttempts bounds booking reference regeneration.
	maxBookingIDAttempts = 3
)

// Reservation claims one slot of one court on one calendar date.
// UserID is nil for walk-in bookings made by an owner or admin.
type Reservation struct {
	ID           int64
	ClubID       int64
	CourtID      int64
	SlotID       int64
	UserID       *int64
	BookingID    string
	Date         time.Time
	Status       string
	BookedByName *string
	Phone        *string
	Player1      *string
	Player2      *string
	Player3      *string
	Player4      *string
	CreatedAt    time.Time
}

// Listing is a reservation with the names a client needs to display it.
type Listing struct {
	Reservation
	ClubName  string
	CourtName string
	TimeFrom  string
	TimeTo    string
}

// Scope restricts which reservations a query can see. The zero value sees all.
type Scope struct {
	// ClubOwnerID limits to reservations of clubs owned by this user.
	ClubOwnerID *int64
	// UserID limits to reservations booked by this user.
	UserID *int64
	// ClubIDs limits to reservations of these clubs.
	ClubIDs []int64
	// Limit caps the row count when positive.
	Limit uint64
}

// ScopeFor returns the visibility of a caller: admins see everything, owners
// see their clubs' reservations and users their own.
func ScopeFor(caller auth.Identity) Scope {
	id := caller.UserID
	switch {
	case caller.IsAdmin():
		return Scope{}
	case caller.IsOwner():
		return Scope{ClubOwnerID: &id}
	default:
		return Scope{UserID: &id}
	}
}

// CreateRequest carries a booking. UserID is only honored for owners and admins.
type CreateRequest struct {
	ClubID       int64
	CourtID      int64
	SlotID       int64
	Date         time.Time
	UserID       *int64
	BookedByName *string
	Phone        *string
	Player1      *string
	Player2      *string
	Player3      *string
	Player4      *string
}

// UpdateRequest moves a reservation to another date and/or slot of the same court.
type UpdateRequest struct {
	Date   *time.Time
	SlotID *int64
}
