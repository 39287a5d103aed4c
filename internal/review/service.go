package review

import (
	"context"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
)

// ClubLookup resolves a club, returning club.ErrNotFound when absent.
type ClubLookup interface {
	GetByID(ctx context.Context, id int64) (*club.Club, error)
}

type Service interface {
	List(ctx context.Context, clubID int64) ([]*Review, error)
	GetByID(ctx context.Context, id int64) (*Review, error)
	Create(ctx context.Context, caller auth.Identity, clubID int64, f Fields) (*Review, error)
	Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Review, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*Review, error)
}

type service struct {
	repo  Repository
	clubs ClubLookup
}

func NewService(repo Repository, clubs ClubLookup) Service {
	return &service{repo: repo, clubs: clubs}
}

func (s *service) List(ctx context.Context, clubID int64) ([]*Review, error) {
	return s.repo.List(ctx, clubID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func validate(f *Fields) error {
	if f.Stars != nil && (*f.Stars < MinStars || *f.Stars > MaxStars) {
		return ErrInvalidStars
	}
	if f.Comment != nil {
		comment := strings.TrimSpace(*f.Comment)
		if comment == "" {
			return ErrRequired
		}
		f.Comment = &comment
	}
	return nil
}

func (s *service) Create(ctx context.Context, caller auth.Identity, clubID int64, f Fields) (*Review, error) {
	if clubID <= 0 || f.Stars == nil || f.Comment == nil {
		return nil, ErrRequired
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	if !caller.HasUserID {
		return nil, ErrUnknownAuthor
	}

	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}

	rv := &Review{
		ClubID:  clubID,
		UserID:  caller.UserID,
		Stars:   *f.Stars,
		Comment: *f.Comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Review, error) {
	if f.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if err := validate(&f); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, f, caller.OwnerScope()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*Review, error) {
	return s.repo.Delete(ctx, id, caller.OwnerScope())
}
