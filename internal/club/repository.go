package club

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/pgerr"
)

type Repository interface {
	Create(ctx context.Context, c *Club) error
	GetByID(ctx context.Context, id int64) (*Club, error)
	List(ctx context.Context, filter Filter) ([]*Club, error)
	// Update and Delete match nothing when ownerID is set and differs from the club's owner.
	Update(ctx context.Context, id int64, f Fields, ownerID *int64) error
	Delete(ctx context.Context, id int64, ownerID *int64) (*Club, error)
	// OwnerOf returns the owner of a club, or ErrNotFound.
	OwnerOf(ctx context.Context, id int64) (int64, error)
}

var clubColumns = []string{
	"c.club_id", "c.owner_id", "c.name", "c.address", "c.city", "c.lat", "c.lon",
	"c.phone_number", "c.maps_url", "c.whatsapp", "c.about", "c.cover_url", "c.logo_url",
	"c.rules", "c.is_active", "c.created_at",
}

var ratingColumns = []string{
	"COALESCE((SELECT ROUND(AVG(rv.stars)::numeric, 1) FROM reviews rv WHERE rv.club_id = c.club_id), 0)::float8",
	"(SELECT COUNT(*) FROM reviews rv WHERE rv.club_id = c.club_id)",
}

type pgxRepository struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanClub(row pgx.Row, withRating bool) (*Club, error) {
	var c Club
	dest := []any{
		&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.City, &c.Lat, &c.Lon,
		&c.PhoneNumber, &c.MapsURL, &c.Whatsapp, &c.About, &c.CoverURL, &c.LogoURL,
		&c.Rules, &c.IsActive, &c.CreatedAt,
	}
	if withRating {
		dest = append(dest, &c.Rating, &c.ReviewsCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Club) error {
	query, args, err := r.psql.Insert("clubs").
		Columns(
			"owner_id", "name", "address", "city", "lat", "lon", "phone_number", "maps_url",
			"whatsapp", "about", "cover_url", "logo_url", "rules", "is_active",
		).
		Values(
			c.OwnerID, c.Name, c.Address, c.City, c.Lat, c.Lon, c.PhoneNumber, c.MapsURL,
			c.Whatsapp, c.About, c.CoverURL, c.LogoURL, c.Rules, c.IsActive,
		).
		Suffix("RETURNING club_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create club query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return translateCreate(err)
	}
	return nil
}

// translateCreate maps insert failures; owner_id is the only foreign key.
func translateCreate(err error) error {
	if pgerr.IsForeignKeyViolation(err) {
		return apperror.WithCause(ErrUnknownOwner, err)
	}
	return fmt.Errorf("create club failed: %w", err)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Club, error) {
	query, args, err := r.psql.Select(append(clubColumns, ratingColumns...)...).
		From("clubs c").
		Where(squirrel.Eq{"c.club_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get club query failed: %w", err)
	}

	c, err := scanClub(r.pool.QueryRow(ctx, query, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get club failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Club, error) {
	q := r.psql.Select(append(clubColumns, ratingColumns...)...).
		From("clubs c").
		OrderBy("c.club_id")
	if filter.OwnerID != nil {
		q = q.Where(squirrel.Eq{"c.owner_id": *filter.OwnerID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clubs failed: %w", err)
	}
	defer rows.Close()

	clubs := []*Club{}
	for rows.Next() {
		c, err := scanClub(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan club failed: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, id int64, f Fields, ownerID *int64) error {
	cols := f.columns()
	if len(cols) == 0 {
		return nil
	}

	q := r.psql.Update("clubs").SetMap(cols).Where(squirrel.Eq{"club_id": id})
	if ownerID != nil {
		q = q.Where(squirrel.Eq{"owner_id": *ownerID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update club query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update club failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64, ownerID *int64) (*Club, error) {
	returning := make([]string, len(clubColumns))
	for i, col := range clubColumns {
		returning[i] = col[2:]
	}

	q := r.psql.Delete("clubs").Where(squirrel.Eq{"club_id": id})
	if ownerID != nil {
		q = q.Where(squirrel.Eq{"owner_id": *ownerID})
	}

	query, args, err := q.Suffix("RETURNING " + strings.Join(returning, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete club query failed: %w", err)
	}

	c, err := scanClub(r.pool.QueryRow(ctx, query, args...), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete club failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM clubs WHERE club_id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get club owner failed: %w", err)
	}
	return ownerID, nil
}
