package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/pgerr"
)

type Repository interface {
	List(ctx context.Context, courtID int64) ([]*TimeSlot, error)
	Availability(ctx context.Context, courtID int64, date time.Time) ([]*Availability, error)
	GetByID(ctx context.Context, id int64) (*TimeSlot, error)
	Create(ctx context.Context, s *TimeSlot) error
	// Update and Delete match nothing when ownerID is set and the slot's club
	// belongs to someone else.
	Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*TimeSlot, error)
	Delete(ctx context.Context, id int64, ownerID *int64) (*TimeSlot, error)
}

const ownedCourtsClause = `court_id IN (SELECT ct.court_id FROM courts ct
	JOIN clubs cl ON cl.club_id = ct.club_id WHERE cl.owner_id = ?)`

const returningSlot = "RETURNING slot_id, court_id, time_from::text, time_to::text, price::float8, is_active, created_at"

var slotColumns = []string{
	"s.slot_id", "s.court_id", "s.time_from::text", "s.time_to::text", "s.price::float8",
	"s.is_active", "s.created_at",
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

func slotDest(s *TimeSlot) []any {
	return []any{&s.ID, &s.CourtID, &s.TimeFrom, &s.TimeTo, &s.Price, &s.IsActive, &s.CreatedAt}
}

func scanSlot(row pgx.Row) (*TimeSlot, error) {
	var s TimeSlot
	if err := row.Scan(slotDest(&s)...); err != nil {
		return nil, err
	}
	return &s, nil
}

// translate maps constraint failures of time_slots writes to domain errors.
func translate(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return ErrAlreadyExists
	case pgerr.IsCheckViolation(err):
		if pgerr.ConstraintName(err) == "time_slots_price_check" {
			return ErrNegativePrice
		}
		return ErrInvalidRange
	case pgerr.IsInvalidText(err):
		return ErrInvalidTime
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, courtID int64) ([]*TimeSlot, error) {
	query, args, err := r.psql.Select(slotColumns...).
		From("time_slots s").
		Where(squirrel.Eq{"s.court_id": courtID}).
		OrderBy("s.time_from").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	slots := []*TimeSlot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *pgxRepository) Availability(ctx context.Context, courtID int64, date time.Time) ([]*Availability, error) {
	query, args, err := r.psql.Select(append(slotColumns, "r.reservation_id IS NULL")...).
		From("time_slots s").
		LeftJoin(
			"reservations r ON r.slot_id = s.slot_id AND r.court_id = s.court_id AND r.date_iso = ? AND r.status = 'Active'",
			date,
		).
		Where(squirrel.Eq{"s.court_id": courtID}).
		OrderBy("s.time_from").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slot availability query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("slot availability failed: %w", err)
	}
	defer rows.Close()

	items := []*Availability{}
	for rows.Next() {
		var a Availability
		if err := rows.Scan(append(slotDest(&a.TimeSlot), &a.IsAvailable)...); err != nil {
			return nil, fmt.Errorf("scan slot availability failed: %w", err)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*TimeSlot, error) {
	query, args, err := r.psql.Select(slotColumns...).
		From("time_slots s").
		Where(squirrel.Eq{"s.slot_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	s, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *TimeSlot) error {
	query, args, err := r.psql.Insert("time_slots").
		Columns("court_id", "time_from", "time_to", "price", "is_active").
		Values(s.CourtID, s.TimeFrom, s.TimeTo, s.Price, s.IsActive).
		Suffix("RETURNING slot_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		if domainErr := translate(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("create slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*TimeSlot, error) {
	cols := f.columns()
	if len(cols) == 0 {
		cols = map[string]any{"slot_id": squirrel.Expr("slot_id")}
	}

	q := r.psql.Update("time_slots").SetMap(cols).Where(squirrel.Eq{"slot_id": id})
	if ownerID != nil {
		q = q.Where(ownedCourtsClause, *ownerID)
	}

	query, args, err := q.Suffix(returningSlot).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update slot query failed: %w", err)
	}

	s, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if domainErr := translate(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("update slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64, ownerID *int64) (*TimeSlot, error) {
	q := r.psql.Delete("time_slots").Where(squirrel.Eq{"slot_id": id})
	if ownerID != nil {
		q = q.Where(ownedCourtsClause, *ownerID)
	}

	query, args, err := q.Suffix(returningSlot).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete slot query failed: %w", err)
	}

	s, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete slot failed: %w", err)
	}
	return s, nil
}
