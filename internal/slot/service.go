package slot

import (
	"context"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

// CourtAuthorizer checks that the caller may manage a court.
type CourtAuthorizer interface {
	Authorize(ctx context.Context, caller auth.Identity, courtID int64) error
}

type Service interface {
	List(ctx context.Context, courtID int64) ([]*TimeSlot, error)
	Availability(ctx context.Context, courtID int64, date time.Time) ([]*Availability, error)
	GetByID(ctx context.Context, id int64) (*TimeSlot, error)
	Create(ctx context.Context, caller auth.Identity, courtID int64, f Fields) (*TimeSlot, error)
	Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*TimeSlot, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*TimeSlot, error)
}

type service struct {
	repo   Repository
	courts CourtAuthorizer
}

func NewService(repo Repository, courts CourtAuthorizer) Service {
	return &service{repo: repo, courts: courts}
}

func (s *service) List(ctx context.Context, courtID int64) ([]*TimeSlot, error) {
	return s.repo.List(ctx, courtID)
}

func (s *service) Availability(ctx context.Context, courtID int64, date time.Time) ([]*Availability, error) {
	return s.repo.Availability(ctx, courtID, date)
}

func (s *service) GetByID(ctx context.Context, id int64) (*TimeSlot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, caller auth.Identity, courtID int64, f Fields) (*TimeSlot, error) {
	if f.TimeFrom == nil || f.TimeTo == nil || f.Price == nil {
		return nil, ErrRequired
	}
	if err := normalize(&f); err != nil {
		return nil, err
	}
	if *f.TimeTo <= *f.TimeFrom {
		return nil, ErrInvalidRange
	}

	if err := s.courts.Authorize(ctx, caller, courtID); err != nil {
		return nil, err
	}

	ts := &TimeSlot{
		CourtID:  courtID,
		TimeFrom: *f.TimeFrom,
		TimeTo:   *f.TimeTo,
		Price:    *f.Price,
		IsActive: true,
	}
	if f.IsActive != nil {
		ts.IsActive = *f.IsActive
	}

	if err := s.repo.Create(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*TimeSlot, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	// A one-sided range change is checked by the time_slots_range_check constraint.
	if f.TimeFrom != nil && f.TimeTo != nil && *f.TimeTo <= *f.TimeFrom {
		return nil, ErrInvalidRange
	}
	return s.repo.Update(ctx, id, f, caller.OwnerScope())
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*TimeSlot, error) {
	return s.repo.Delete(ctx, id, caller.OwnerScope())
}

// normalize rewrites clock fields to HH:MM:SS so they compare lexically.
func normalize(f *Fields) error {
	for _, p := range []**string{&f.TimeFrom, &f.TimeTo} {
		if *p == nil {
			continue
		}
		v, err := ParseClock(**p)
		if err != nil {
			return err
		}
		*p = &v
	}
	if f.Price != nil && *f.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
