package club

import (
	"context"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

type Service interface {
	Create(ctx context.Context, caller auth.Identity, f Fields) (*Club, error)
	GetByID(ctx context.Context, id int64) (*Club, error)
	List(ctx context.Context, filter Filter) ([]*Club, error)
	Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Club, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*Club, error)

	// Authorize reports ErrNotFound when the club does not exist and ErrNotOwner
	// when the caller neither owns it nor is an admin.
	Authorize(ctx context.Context, caller auth.Identity, clubID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, caller auth.Identity, f Fields) (*Club, error) {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		return nil, ErrNameRequired
	}
	if !caller.HasUserID {
		return nil, ErrUnknownOwner
	}

	c := &Club{
		OwnerID:     caller.UserID,
		Name:        strings.TrimSpace(*f.Name),
		Address:     f.Address,
		City:        f.City,
		Lat:         f.Lat,
		Lon:         f.Lon,
		PhoneNumber: f.PhoneNumber,
		MapsURL:     f.MapsURL,
		Whatsapp:    f.Whatsapp,
		About:       f.About,
		CoverURL:    f.CoverURL,
		LogoURL:     f.LogoURL,
		Rules:       f.Rules,
		IsActive:    true,
	}
	if f.IsActive != nil {
		c.IsActive = *f.IsActive
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Club, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Club, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Club, error) {
	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		f.Name = &name
	}

	if err := s.Authorize(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, f, caller.OwnerScope()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*Club, error) {
	if err := s.Authorize(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, id, caller.OwnerScope())
}

func (s *service) Authorize(ctx context.Context, caller auth.Identity, clubID int64) error {
	ownerID, err := s.repo.OwnerOf(ctx, clubID)
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
