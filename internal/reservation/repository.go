package reservation

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
	List(ctx context.Context, scope Scope) ([]*Listing, error)
	// Get returns ErrNotFound when the reservation is absent or outside scope.
	Get(ctx context.Context, id int64, scope Scope) (*Listing, error)
	BookedSlots(ctx context.Context, courtID int64, date time.Time) ([]int64, error)
	// ValidRelation reports whether the court belongs to the club and the slot
	// to the court, with both active.
	ValidRelation(ctx context.Context, clubID, courtID, slotID int64) (bool, error)
	// SlotOnCourt reports whether the slot belongs to the court and is active.
	SlotOnCourt(ctx context.Context, slotID, courtID int64) (bool, error)
	Create(ctx context.Context, r *Reservation) error
	Update(ctx context.Context, id int64, req UpdateRequest) (*Reservation, error)
	Delete(ctx context.Context, id int64) (*Reservation, error)
}

const bookingIDConstraint = "reservations_booking_id_key"

var reservationColumns = []string{
	"reservation_id", "club_id", "court_id", "slot_id", "user_id", "booking_id", "date_iso",
	"status", "booked_by_name", "phone", "player1", "player2", "player3", "player4", "created_at",
}

var listingColumns = []string{
	"r.reservation_id", "r.club_id", "r.court_id", "r.slot_id", "r.user_id", "r.booking_id", "r.date_iso",
	"r.status", "r.booked_by_name", "r.phone", "r.player1", "r.player2", "r.player3", "r.player4", "r.created_at",
	"cl.name", "ct.name", "s.time_from::text", "s.time_to::text",
}

const returningReservation = "RETURNING reservation_id, club_id, court_id, slot_id, user_id, booking_id, date_iso, " +
	"status, booked_by_name, phone, player1, player2, player3, player4, created_at"

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

func reservationDest(r *Reservation) []any {
	return []any{
		&r.ID, &r.ClubID, &r.CourtID, &r.SlotID, &r.UserID, &r.BookingID, &r.Date,
		&r.Status, &r.BookedByName, &r.Phone, &r.Player1, &r.Player2, &r.Player3, &r.Player4, &r.CreatedAt,
	}
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var r Reservation
	if err := row.Scan(reservationDest(&r)...); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanListing(row pgx.Row) (*Listing, error) {
	var l Listing
	dest := append(reservationDest(&l.Reservation), &l.ClubName, &l.CourtName, &l.TimeFrom, &l.TimeTo)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &l, nil
}

// translate maps constraint failures of reservation writes to domain errors.
func translate(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		if pgerr.ConstraintName(err) == bookingIDConstraint {
			return errBookingIDTaken
		}
		return ErrAlreadyBooked
	case pgerr.IsForeignKeyViolation(err):
		return ErrInvalidForeignKey
	case pgerr.IsInvalidText(err):
		return ErrInvalidDate
	}
	return nil
}

func (r *pgxRepository) listingQuery(scope Scope) squirrel.SelectBuilder {
	q := r.psql.Select(listingColumns...).
		From("reservations r").
		Join("clubs cl ON cl.club_id = r.club_id").
		Join("courts ct ON ct.court_id = r.court_id").
		Join("time_slots s ON s.slot_id = r.slot_id")
	if scope.ClubOwnerID != nil {
		q = q.Where(squirrel.Eq{"cl.owner_id": *scope.ClubOwnerID})
	}
	if scope.UserID != nil {
		q = q.Where(squirrel.Eq{"r.user_id": *scope.UserID})
	}
	if scope.ClubIDs != nil {
		q = q.Where(squirrel.Eq{"r.club_id": scope.ClubIDs})
	}
	if scope.Limit > 0 {
		q = q.Limit(scope.Limit)
	}
	return q
}

func (r *pgxRepository) List(ctx context.Context, scope Scope) ([]*Listing, error) {
	query, args, err := r.listingQuery(scope).OrderBy("r.reservation_id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *pgxRepository) Get(ctx context.Context, id int64, scope Scope) (*Listing, error) {
	query, args, err := r.listingQuery(scope).Where(squirrel.Eq{"r.reservation_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	l, err := scanListing(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return l, nil
}

func (r *pgxRepository) BookedSlots(ctx context.Context, courtID int64, date time.Time) ([]int64, error) {
	query, args, err := r.psql.Select("slot_id").
		From("reservations").
		Where(squirrel.Eq{"court_id": courtID, "date_iso": date, "status": StatusActive}).
		OrderBy("slot_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booked slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list booked slots failed: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan booked slots failed: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *pgxRepository) ValidRelation(ctx context.Context, clubID, courtID, slotID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM courts c
			JOIN time_slots s ON s.court_id = c.court_id
			WHERE c.court_id = $1 AND c.club_id = $2 AND s.slot_id = $3
			  AND c.is_active AND s.is_active
		)`, courtID, clubID, slotID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check reservation relation failed: %w", err)
	}
	return ok, nil
}

func (r *pgxRepository) SlotOnCourt(ctx context.Context, slotID, courtID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM time_slots WHERE slot_id = $1 AND court_id = $2 AND is_active)`,
		slotID, courtID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check slot court failed: %w", err)
	}
	return ok, nil
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	query, args, err := r.psql.Insert("reservations").
		Columns(
			"club_id", "court_id", "slot_id", "user_id", "booking_id", "date_iso", "status",
			"booked_by_name", "phone", "player1", "player2", "player3", "player4",
		).
		Values(
			res.ClubID, res.CourtID, res.SlotID, res.UserID, res.BookingID, res.Date, res.Status,
			res.BookedByName, res.Phone, res.Player1, res.Player2, res.Player3, res.Player4,
		).
		Suffix("RETURNING reservation_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		if domainErr := translate(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, id int64, req UpdateRequest) (*Reservation, error) {
	cols := map[string]any{}
	if req.Date != nil {
		cols["date_iso"] = *req.Date
	}
	if req.SlotID != nil {
		cols["slot_id"] = *req.SlotID
	}
	if len(cols) == 0 {
		return nil, ErrNothingToUpdate
	}

	query, args, err := r.psql.Update("reservations").
		SetMap(cols).
		Where(squirrel.Eq{"reservation_id": id}).
		Suffix(returningReservation).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if domainErr := translate(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("update reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) (*Reservation, error) {
	query, args, err := r.psql.Delete("reservations").
		Where(squirrel.Eq{"reservation_id": id}).
		Suffix(returningReservation).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete reservation failed: %w", err)
	}
	return res, nil
}
