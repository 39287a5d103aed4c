package court

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/pgerr"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id int64) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Listing, error)
	// Siblings returns other courts of the same club, newest first.
	Siblings(ctx context.Context, clubID, excludeID int64, limit uint64) ([]*Summary, error)
	// Update and Delete match nothing when ownerID is set and the court's club
	// belongs to someone else.
	Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*Court, error)
	Delete(ctx context.Context, id int64, ownerID *int64) (*Court, error)
	// OwnerOf returns the owner of the club the court belongs to.
	OwnerOf(ctx context.Context, id int64) (int64, error)
}

const ownedClubsClause = "club_id IN (SELECT club_id FROM clubs WHERE owner_id = ?)"

var courtColumns = []string{
	"court_id", "club_id", "name", "type", "surface", "about", "lighting",
	"max_players", "features", "cover_url", "rules", "is_active", "created_at",
}

var listingColumns = []string{
	"ct.court_id", "ct.club_id", "ct.name", "ct.type", "ct.surface", "ct.about", "ct.lighting",
	"ct.max_players", "ct.features", "ct.cover_url", "ct.rules", "ct.is_active", "ct.created_at",
	"cl.name", "cl.city", "cl.address", "cl.cover_url", "cl.logo_url",
	"COALESCE((SELECT ROUND(AVG(rv.stars)::numeric, 1) FROM reviews rv WHERE rv.club_id = cl.club_id), 0)::float8",
	"(SELECT COUNT(*) FROM reviews rv WHERE rv.club_id = cl.club_id)",
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

func courtDest(c *Court) []any {
	return []any{
		&c.ID, &c.ClubID, &c.Name, &c.Type, &c.Surface, &c.About, &c.Lighting,
		&c.MaxPlayers, &c.Features, &c.CoverURL, &c.Rules, &c.IsActive, &c.CreatedAt,
	}
}

func scanCourt(row pgx.Row) (*Court, error) {
	var c Court
	if err := row.Scan(courtDest(&c)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	query, args, err := r.psql.Insert("courts").
		Columns(
			"club_id", "name", "type", "surface", "about", "lighting",
			"max_players", "features", "cover_url", "rules", "is_active",
		).
		Values(
			c.ClubID, c.Name, c.Type, c.Surface, c.About, c.Lighting,
			c.MaxPlayers, c.Features, c.CoverURL, c.Rules, c.IsActive,
		).
		Suffix("RETURNING court_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		if pgerr.IsCheckViolation(err) {
			return ErrInvalidMaxPlayers
		}
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Court, error) {
	query, args, err := r.psql.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"court_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court query failed: %w", err)
	}

	c, err := scanCourt(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Listing, error) {
	q := r.psql.Select(listingColumns...).
		From("courts ct").
		Join("clubs cl ON cl.club_id = ct.club_id").
		OrderBy("ct.court_id DESC")
	if filter.ClubID != nil {
		q = q.Where(squirrel.Eq{"ct.club_id": *filter.ClubID})
	}
	if filter.ClubIDs != nil {
		q = q.Where(squirrel.Eq{"ct.club_id": filter.ClubIDs})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		var l Listing
		dest := append(courtDest(&l.Court),
			&l.ClubName, &l.ClubCity, &l.ClubAddress, &l.ClubCoverURL, &l.ClubLogoURL,
			&l.ClubRating, &l.ClubReviews,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan court failed: %w", err)
		}
		listings = append(listings, &l)
	}
	return listings, rows.Err()
}

func (r *pgxRepository) Siblings(ctx context.Context, clubID, excludeID int64, limit uint64) ([]*Summary, error) {
	query, args, err := r.psql.Select("court_id", "club_id", "name", "type", "cover_url").
		From("courts").
		Where(squirrel.Eq{"club_id": clubID}).
		Where(squirrel.NotEq{"court_id": excludeID}).
		OrderBy("court_id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sibling courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sibling courts failed: %w", err)
	}
	defer rows.Close()

	summaries := []*Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.ClubID, &s.Name, &s.Type, &s.CoverURL); err != nil {
			return nil, fmt.Errorf("scan sibling court failed: %w", err)
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*Court, error) {
	cols := f.columns()
	if len(cols) == 0 {
		cols = map[string]any{"court_id": squirrel.Expr("court_id")}
	}

	q := r.psql.Update("courts").SetMap(cols).Where(squirrel.Eq{"court_id": id})
	if ownerID != nil {
		q = q.Where(ownedClubsClause, *ownerID)
	}

	query, args, err := q.Suffix("RETURNING " + strings.Join(courtColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update court query failed: %w", err)
	}

	c, err := scanCourt(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFoundOrNotOwned
		}
		if pgerr.IsCheckViolation(err) {
			return nil, ErrInvalidMaxPlayers
		}
		return nil, fmt.Errorf("update court failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64, ownerID *int64) (*Court, error) {
	q := r.psql.Delete("courts").Where(squirrel.Eq{"court_id": id})
	if ownerID != nil {
		q = q.Where(ownedClubsClause, *ownerID)
	}

	query, args, err := q.Suffix("RETURNING " + strings.Join(courtColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete court query failed: %w", err)
	}

	c, err := scanCourt(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFoundOrNotOwned
		}
		return nil, fmt.Errorf("delete court failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.pool.QueryRow(ctx,
		`SELECT cl.owner_id FROM courts ct JOIN clubs cl ON cl.club_id = ct.club_id WHERE ct.court_id = $1`,
		id,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get court owner failed: %w", err)
	}
	return ownerID, nil
}
