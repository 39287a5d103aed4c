package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/pgerr"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error)
}

const userColumns = "user_id, full_name, email, phone, password_hash, role, photo_url, created_at"

type pgxUserRepository struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.PhotoURL,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO users (full_name, email, phone, password_hash, role, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, created_at
	`
	err := r.pool.QueryRow(ctx, query, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Role, u.PhotoURL).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		if pgerr.IsCheckViolation(err) {
			return ErrInvalidRole
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE user_id = $1"
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}
	return u, err
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}
	return u, err
}

func (r *pgxUserRepository) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error) {
	q := r.psql.Update("users").Where(squirrel.Eq{"user_id": id})
	if upd.FullName != nil {
		q = q.Set("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		q = q.Set("email", *upd.Email)
	}
	if upd.Phone != nil {
		q = q.Set("phone", *upd.Phone)
	}
	if upd.PhotoURL != nil {
		q = q.Set("photo_url", *upd.PhotoURL)
	}

	query, args, err := q.Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user query failed: %w", err)
	}

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, fmt.Errorf("update user failed: %w", err)
	}
	return u, nil
}
