package dashboard

import (
	"context"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/reservation"
)

// RecentReservations caps the reservations shown on the dashboard.
const RecentReservations = 20

// Overview is everything an owner sees on their dashboard.
// Club is the first owned club, or nil when the owner has none.
type Overview struct {
	Club         *club.Club
	Clubs        []*club.Club
	Courts       []*court.Listing
	Reservations []*reservation.Listing
}

type ClubLister interface {
	List(ctx context.Context, filter club.Filter) ([]*club.Club, error)
}

type CourtLister interface {
	List(ctx context.Context, filter court.Filter) ([]*court.Listing, error)
}

type ReservationLister interface {
	ListForClubs(ctx context.Context, clubIDs []int64, limit uint64) ([]*reservation.Listing, error)
}

type Service interface {
	Overview(ctx context.Context, caller auth.Identity) (*Overview, error)
}

type service struct {
	clubs        ClubLister
	courts       CourtLister
	reservations ReservationLister
}

func NewService(clubs ClubLister, courts CourtLister, reservations ReservationLister) Service {
	return &service{clubs: clubs, courts: courts, reservations: reservations}
}

func (s *service) Overview(ctx context.Context, caller auth.Identity) (*Overview, error) {
	ownerID := caller.UserID
	clubs, err := s.clubs.List(ctx, club.Filter{OwnerID: &ownerID})
	if err != nil {
		return nil, err
	}

	out := &Overview{
		Clubs:        clubs,
		Courts:       []*court.Listing{},
		Reservations: []*reservation.Listing{},
	}
	if len(clubs) == 0 {
		return out, nil
	}
	out.Club = clubs[0]

	ids := make([]int64, len(clubs))
	for i, c := range clubs {
		ids[i] = c.ID
	}

	if out.Courts, err = s.courts.List(ctx, court.Filter{ClubIDs: ids}); err != nil {
		return nil, err
	}
	if out.Reservations, err = s.reservations.ListForClubs(ctx, ids, RecentReservations); err != nil {
		return nil, err
	}
	return out, nil
}
