package facility

import (
	"context"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

// ClubAuthorizer checks that the caller may manage a club.
type ClubAuthorizer interface {
	Authorize(ctx context.Context, caller auth.Identity, clubID int64) error
}

type Service interface {
	List(ctx context.Context, clubID int64) ([]*Facility, error)
	GetByID(ctx context.Context, id int64) (*Facility, error)
	Create(ctx context.Context, caller auth.Identity, clubID int64, f Fields) (*Facility, error)
	Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Facility, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*Facility, error)
}

type service struct {
	repo  Repository
	clubs ClubAuthorizer
}

func NewService(repo Repository, clubs ClubAuthorizer) Service {
	return &service{repo: repo, clubs: clubs}
}

func (s *service) List(ctx context.Context, clubID int64) ([]*Facility, error) {
	return s.repo.List(ctx, clubID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, caller auth.Identity, clubID int64, f Fields) (*Facility, error) {
	if clubID <= 0 || f.Label == nil || strings.TrimSpace(*f.Label) == "" {
		return nil, ErrRequired
	}
	if err := s.clubs.Authorize(ctx, caller, clubID); err != nil {
		return nil, err
	}

	fac := &Facility{ClubID: clubID, Icon: f.Icon, Label: strings.TrimSpace(*f.Label)}
	if err := s.repo.Create(ctx, fac); err != nil {
		return nil, err
	}
	return fac, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Facility, error) {
	if f.Label != nil {
		label := strings.TrimSpace(*f.Label)
		if label == "" {
			return nil, ErrRequired
		}
		f.Label = &label
	}
	return s.repo.Update(ctx, id, f, caller.OwnerScope())
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*Facility, error) {
	return s.repo.Delete(ctx, id, caller.OwnerScope())
}
