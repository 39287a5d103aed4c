package gallery

import (
	"context"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

type Service interface {
	List(ctx context.Context, parentID int64) ([]*Image, error)
	GetByID(ctx context.Context, id int64) (*Image, error)
	Create(ctx context.Context, caller auth.Identity, parentID int64, f Fields) (*Image, error)
	Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Image, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) (*Image, error)
}

type service struct {
	repo Repository
	kind Kind
}

func NewService(repo Repository, kind Kind) Service {
	return &service{repo: repo, kind: kind}
}

func (s *service) List(ctx context.Context, parentID int64) ([]*Image, error) {
	return s.repo.List(ctx, parentID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, caller auth.Identity, parentID int64, f Fields) (*Image, error) {
	if f.URL == nil || strings.TrimSpace(*f.URL) == "" {
		return nil, ErrImageURLRequired
	}

	ownerID, err := s.repo.ParentOwner(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && (!caller.HasUserID || ownerID != caller.UserID) {
		return nil, s.kind.ErrNotOwner
	}

	img := &Image{ParentID: parentID, URL: strings.TrimSpace(*f.URL)}
	if f.Position != nil {
		img.Position = *f.Position
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, f Fields) (*Image, error) {
	if f.URL != nil {
		url := strings.TrimSpace(*f.URL)
		if url == "" {
			return nil, ErrImageURLRequired
		}
		f.URL = &url
	}
	return s.repo.Update(ctx, id, f, caller.OwnerScope())
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) (*Image, error) {
	return s.repo.Delete(ctx, id, caller.OwnerScope())
}
