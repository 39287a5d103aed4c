package court

import (
	"context"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
)

type Service interface {
	Create(ctx context.Context, caller auth.Identity, clubID int64, f Fields) (*Court, error)
	GetByID(ctx context.Context, id int64) (*Court, error)
	GetDetail(ctx context.Context, id int64) (*Detail, error)
	List(ctx context.Context, filter Filter) ([]*Listing, error)
	Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Court, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*Court, error)

	// Authorize reports ErrNotFound when the court does not exist and
	// ErrNotOwner when the caller does not own its club.
	Authorize(ctx context.Context, caller auth.Identity, courtID int64) error
}

type service struct {
	repo   Repository
	clubs  club.Service
	images gallery.Service
}

func NewService(repo Repository, clubs club.Service, images gallery.Service) Service {
	return &service{repo: repo, clubs: clubs, images: images}
}

func (s *service) Create(ctx context.Context, caller auth.Identity, clubID int64, f Fields) (*Court, error) {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		return nil, ErrNameRequired
	}
	if f.MaxPlayers != nil && *f.MaxPlayers <= 0 {
		return nil, ErrInvalidMaxPlayers
	}

	if err := s.clubs.Authorize(ctx, caller, clubID); err != nil {
		return nil, err
	}

	c := &Court{
		ClubID:     clubID,
		Name:       strings.TrimSpace(*f.Name),
		Type:       f.Type,
		Surface:    f.Surface,
		About:      f.About,
		Lighting:   f.Lighting,
		MaxPlayers: DefaultMaxPlayers,
		Features:   f.Features,
		CoverURL:   f.CoverURL,
		Rules:      f.Rules,
		IsActive:   true,
	}
	if f.MaxPlayers != nil {
		c.MaxPlayers = *f.MaxPlayers
	}
	if f.IsActive != nil {
		c.IsActive = *f.IsActive
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetDetail(ctx context.Context, id int64) (*Detail, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.images.List(ctx, id)
	if err != nil {
		return nil, err
	}

	others, err := s.repo.Siblings(ctx, c.ClubID, id, MaxOtherCourts)
	if err != nil {
		return nil, err
	}

	return &Detail{Court: c, Images: images, OtherCourts: others}, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Listing, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Court, error) {
	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		f.Name = &name
	}
	if f.MaxPlayers != nil && *f.MaxPlayers <= 0 {
		return nil, ErrInvalidMaxPlayers
	}
	return s.repo.Update(ctx, id, f, caller.OwnerScope())
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*Court, error) {
	return s.repo.Delete(ctx, id, caller.OwnerScope())
}

func (s *service) Authorize(ctx context.Context, caller auth.Identity, courtID int64) error {
	ownerID, err := s.repo.OwnerOf(ctx, courtID)
	if err != nil {
		return err
	}
	if caller.IsAdmin() {
		return nil
	}
	if !caller.HasUserID || ownerID != caller.UserID {
		return ErrNotOwner
	}
	return nil
}
