package reservation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
	"github.com/nekogravitycat/club-booking-backend/internal/event"
	"github.com/nekogravitycat/club-booking-backend/internal/metrics"
)

// ClubAuthorizer checks that the caller may manage a club.
type ClubAuthorizer interface {
	Authorize(ctx context.Context, caller auth.Identity, clubID int64) error
}

// OutcomeRecorder counts booking attempts by outcome.
type OutcomeRecorder interface {
	ReservationOutcome(outcome string)
}

type Service interface {
	List(ctx context.Context, caller auth.Identity) ([]*Listing, error)
	ListMine(ctx context.Context, caller auth.Identity) ([]*Listing, error)
	// ListForClubs returns the latest reservations across clubs, newest first.
	ListForClubs(ctx context.Context, clubIDs []int64, limit uint64) ([]*Listing, error)
	Get(ctx context.Context, caller auth.Identity, id int64) (*Listing, error)
	BookedSlots(ctx context.Context, courtID int64, date time.Time) ([]int64, error)
	Create(ctx context.Context, caller auth.Identity, req CreateRequest) (*Reservation, error)
	Update(ctx context.Context, caller auth.Identity, id int64, req UpdateRequest) (*Reservation, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*Reservation, error)
}

type service struct {
	repo      Repository
	clubs     ClubAuthorizer
	publisher event.Publisher
	outcomes  OutcomeRecorder
	now       func() time.Time
}

func NewService(repo Repository, clubs ClubAuthorizer, publisher event.Publisher, outcomes OutcomeRecorder) Service {
	return &service{
		repo:      repo,
		clubs:     clubs,
		publisher: publisher,
		outcomes:  outcomes,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, caller auth.Identity) ([]*Listing, error) {
	return s.repo.List(ctx, ScopeFor(caller))
}

func (s *service) ListMine(ctx context.Context, caller auth.Identity) ([]*Listing, error) {
	id := caller.UserID
	return s.repo.List(ctx, Scope{UserID: &id})
}

func (s *service) ListForClubs(ctx context.Context, clubIDs []int64, limit uint64) ([]*Listing, error) {
	if len(clubIDs) == 0 {
		return []*Listing{}, nil
	}
	return s.repo.List(ctx, Scope{ClubIDs: clubIDs, Limit: limit})
}

func (s *service) Get(ctx context.Context, caller auth.Identity, id int64) (*Listing, error) {
	return s.repo.Get(ctx, id, ScopeFor(caller))
}

func (s *service) BookedSlots(ctx context.Context, courtID int64, date time.Time) ([]int64, error) {
	return s.repo.BookedSlots(ctx, courtID, date)
}

func (s *service) Create(ctx context.Context, caller auth.Identity, req CreateRequest) (*Reservation, error) {
	res, err := s.create(ctx, caller, req)
	switch {
	case err == nil:
		s.outcomes.ReservationOutcome(metrics.OutcomeCreated)
		s.publish(ctx, event.ReservationCreated, res)
	case errors.Is(err, ErrAlreadyBooked):
		s.outcomes.ReservationOutcome(metrics.OutcomeConflict)
	default:
		s.outcomes.ReservationOutcome(metrics.OutcomeRejected)
	}
	return res, err
}

func (s *service) create(ctx context.Context, caller auth.Identity, req CreateRequest) (*Reservation, error) {
	if req.ClubID <= 0 || req.CourtID <= 0 || req.SlotID <= 0 || req.Date.IsZero() {
		return nil, ErrRequired
	}

	// Plain users always book for themselves; owners and admins may book for
	// another account or for a walk-in with no account.
	userID := req.UserID
	if caller.IsUser() {
		id := caller.UserID
		userID = &id
	}

	if caller.IsOwner() {
		if err := s.clubs.Authorize(ctx, caller, req.ClubID); err != nil {
			return nil, err
		}
	}

	ok, err := s.repo.ValidRelation(ctx, req.ClubID, req.CourtID, req.SlotID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidRelation
	}

	res := &Reservation{
		ClubID:       req.ClubID,
		CourtID:      req.CourtID,
		SlotID:       req.SlotID,
		UserID:       userID,
		Date:         req.Date,
		Status:       StatusActive,
		BookedByName: req.BookedByName,
		Phone:        req.Phone,
		Player1:      req.Player1,
		Player2:      req.Player2,
		Player3:      req.Player3,
		Player4:      req.Player4,
	}

	for attempt := 1; ; attempt++ {
		res.BookingID = NewBookingID(s.now())
		err = s.repo.Create(ctx, res)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, errBookingIDTaken) || attempt == maxBookingIDAttempts {
			return nil, err
		}
		slog.WarnContext(ctx, "booking reference collision, regenerating",
			slog.String("booking_id", res.BookingID),
			slog.Int("attempt", attempt),
		)
	}
}

// authorizeWrite loads a reservation and checks the caller may change it.
func (s *service) authorizeWrite(ctx context.Context, caller auth.Identity, id int64) (*Listing, error) {
	existing, err := s.repo.Get(ctx, id, Scope{})
	if err != nil {
		return nil, err
	}

	switch {
	case caller.IsAdmin():
	case caller.IsOwner():
		if err := s.clubs.Authorize(ctx, caller, existing.ClubID); err != nil {
			if errors.Is(err, club.ErrNotOwner) {
				return nil, ErrNotYourClubReservation
			}
			return nil, err
		}
	default:
		if existing.UserID == nil || *existing.UserID != caller.UserID {
			return nil, ErrNotYours
		}
	}
	return existing, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, req UpdateRequest) (*Reservation, error) {
	if req.Date == nil && req.SlotID == nil {
		return nil, ErrNothingToUpdate
	}

	existing, err := s.authorizeWrite(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.SlotID != nil && *req.SlotID != existing.SlotID {
		ok, err := s.repo.SlotOnCourt(ctx, *req.SlotID, existing.CourtID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSlotNotOnCourt
		}
	}

	res, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.ReservationUpdated, res)
	return res, nil
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*Reservation, error) {
	if _, err := s.authorizeWrite(ctx, caller, id); err != nil {
		return nil, err
	}

	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.ReservationDeleted, res)
	return res, nil
}

// publish never fails the request; the row is already committed.
func (s *service) publish(ctx context.Context, eventType string, res *Reservation) {
	err := s.publisher.Publish(ctx, event.Event{
		Type:    eventType,
		Key:     res.BookingID,
		Payload: NewEventPayload(res),
	})
	if err != nil {
		slog.ErrorContext(ctx, "publish reservation event failed",
			slog.String("type", eventType),
			slog.String("booking_id", res.BookingID),
			slog.Any("error", err),
		)
	}
}

// EventPayload is the JSON body of reservation events.
type EventPayload struct {
	ReservationID int64  `json:"reservation_id"`
	BookingID     string `json:"booking_id"`
	ClubID        int64  `json:"club_id"`
	CourtID       int64  `json:"court_id"`
	SlotID        int64  `json:"slot_id"`
	UserID        *int64 `json:"user_id"`
	DateISO       string `json:"date_iso"`
	Status        string `json:"status"`
}

func NewEventPayload(res *Reservation) EventPayload {
	return EventPayload{
		ReservationID: res.ID,
		BookingID:     res.BookingID,
		ClubID:        res.ClubID,
		CourtID:       res.CourtID,
		SlotID:        res.SlotID,
		UserID:        res.UserID,
		DateISO:       res.Date.Format(DateLayout),
		Status:        res.Status,
	}
}
