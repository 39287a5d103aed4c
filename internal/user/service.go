package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

// RegisterRequest is the input for creating an account.
type RegisterRequest struct {
	FullName string
	Email    string
	Phone    *string
	Password string
	Role     string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, ErrEmptyName
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = auth.RoleUser
	}
	switch role {
	case auth.RoleUser, auth.RoleOwner, auth.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		FullName:     name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
	}

	// The unique index on email decides races between concurrent signups.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error) {
	if upd.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		if name == "" {
			return nil, ErrEmptyName
		}
		upd.FullName = &name
	}
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email == "" {
			return nil, ErrEmptyEmail
		}
		upd.Email = &email
	}
	return s.repo.UpdateProfile(ctx, id, upd)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
