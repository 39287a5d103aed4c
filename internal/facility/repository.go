package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, clubID int64) ([]*Facility, error)
	GetByID(ctx context.Context, id int64) (*Facility, error)
	Create(ctx context.Context, f *Facility) error
	Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*Facility, error)
	Delete(ctx context.Context, id int64, ownerID *int64) (*Facility, error)
}

const (
	ownedClubsClause    = "club_id IN (SELECT club_id FROM clubs WHERE owner_id = ?)"
	returningFacility   = "RETURNING facility_id, club_id, icon, label"
	facilitiesTableName = "club_facilities"
)

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

func scanFacility(row pgx.Row) (*Facility, error) {
	var f Facility
	if err := row.Scan(&f.ID, &f.ClubID, &f.Icon, &f.Label); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *pgxRepository) List(ctx context.Context, clubID int64) ([]*Facility, error) {
	query, args, err := r.psql.Select("facility_id", "club_id", "icon", "label").
		From(facilitiesTableName).
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("facility_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list facilities query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facilities failed: %w", err)
	}
	defer rows.Close()

	facilities := []*Facility{}
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Facility, error) {
	query, args, err := r.psql.Select("facility_id", "club_id", "icon", "label").
		From(facilitiesTableName).
		Where(squirrel.Eq{"facility_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get facility query failed: %w", err)
	}

	f, err := scanFacility(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get facility failed: %w", err)
	}
	return f, nil
}

func (r *pgxRepository) Create(ctx context.Context, f *Facility) error {
	query, args, err := r.psql.Insert(facilitiesTableName).
		Columns("club_id", "icon", "label").
		Values(f.ClubID, f.Icon, f.Label).
		Suffix("RETURNING facility_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create facility query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&f.ID); err != nil {
		return fmt.Errorf("create facility failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*Facility, error) {
	cols := f.columns()
	if len(cols) == 0 {
		cols = map[string]any{"facility_id": squirrel.Expr("facility_id")}
	}

	q := r.psql.Update(facilitiesTableName).SetMap(cols).Where(squirrel.Eq{"facility_id": id})
	if ownerID != nil {
		q = q.Where(ownedClubsClause, *ownerID)
	}

	query, args, err := q.Suffix(returningFacility).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update facility query failed: %w", err)
	}

	updated, err := scanFacility(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFoundOrNotOwned
		}
		return nil, fmt.Errorf("update facility failed: %w", err)
	}
	return updated, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64, ownerID *int64) (*Facility, error) {
	q := r.psql.Delete(facilitiesTableName).Where(squirrel.Eq{"facility_id": id})
	if ownerID != nil {
		q = q.Where(ownedClubsClause, *ownerID)
	}

	query, args, err := q.Suffix(returningFacility).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete facility query failed: %w", err)
	}

	deleted, err := scanFacility(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFoundOrNotOwned
		}
		return nil, fmt.Errorf("delete facility failed: %w", err)
	}
	return deleted, nil
}
