package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/club"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/pgerr"
)

type Repository interface {
	List(ctx context.Context, clubID int64) ([]*Review, error)
	GetByID(ctx context.Context, id int64) (*Review, error)
	Create(ctx context.Context, r *Review) error
	// Update and Delete match nothing when authorID is set and differs from the review's author.
	Update(ctx context.Context, id int64, f Fields, authorID *int64) error
	Delete(ctx context.Context, id int64, authorID *int64) (*Review, error)
}

var reviewColumns = []string{
	"r.review_id", "r.club_id", "r.user_id", "u.full_name", "r.stars", "r.comment",
	"r.created_at", "r.updated_at",
	`COALESCE(
		(SELECT json_agg(json_build_object('image_id', ri.image_id, 'image_url', ri.image_url, 'position', ri.position)
			ORDER BY ri.position, ri.image_id)
		 FROM review_images ri WHERE ri.review_id = r.review_id),
		'[]'::json)`,
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

func (r *pgxRepository) selectReviews() squirrel.SelectBuilder {
	return r.psql.Select(reviewColumns...).
		From("reviews r").
		LeftJoin("users u ON u.user_id = r.user_id")
}

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	err := row.Scan(
		&rv.ID, &rv.ClubID, &rv.UserID, &rv.AuthorName, &rv.Stars, &rv.Comment,
		&rv.CreatedAt, &rv.UpdatedAt, &rv.Images,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *pgxRepository) List(ctx context.Context, clubID int64) ([]*Review, error) {
	query, args, err := r.selectReviews().
		Where(squirrel.Eq{"r.club_id": clubID}).
		OrderBy("r.created_at DESC", "r.review_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	query, args, err := r.selectReviews().Where(squirrel.Eq{"r.review_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	rv, err := scanReview(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	return rv, nil
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	query, args, err := r.psql.Insert("reviews").
		Columns("club_id", "user_id", "stars", "comment").
		Values(rv.ClubID, rv.UserID, rv.Stars, rv.Comment).
		Suffix("RETURNING review_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return translateCreate(err)
	}
	rv.Images = []Image{}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, id int64, f Fields, authorID *int64) error {
	q := r.psql.Update("reviews").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"review_id": id})
	if f.Stars != nil {
		q = q.Set("stars", *f.Stars)
	}
	if f.Comment != nil {
		q = q.Set("comment", *f.Comment)
	}
	if authorID != nil {
		q = q.Where(squirrel.Eq{"user_id": *authorID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update review query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if pgerr.IsCheckViolation(err) {
			return ErrInvalidStars
		}
		return fmt.Errorf("update review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFoundOrNotYours
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64, authorID *int64) (*Review, error) {
	q := r.psql.Delete("reviews").Where(squirrel.Eq{"review_id": id})
	if authorID != nil {
		q = q.Where(squirrel.Eq{"user_id": *authorID})
	}

	query, args, err := q.Suffix("RETURNING review_id, club_id, user_id, stars, comment, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete review query failed: %w", err)
	}

	var rv Review
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rv.ID, &rv.ClubID, &rv.UserID, &rv.Stars, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFoundOrNotYours
		}
		return nil, fmt.Errorf("delete review failed: %w", err)
	}
	rv.Images = []Image{}
	return &rv, nil
}

func translateCreate(err error) error {
	switch {
	case pgerr.IsCheckViolation(err):
		return ErrInvalidStars
	case pgerr.IsForeignKeyViolation(err) && pgerr.ConstraintName(err) == "reviews_club_id_fkey":
		return apperror.WithCause(club.ErrNotFound, err)
	case pgerr.IsForeignKeyViolation(err):
		return apperror.WithCause(ErrUnknownAuthor, err)
	}
	return fmt.Errorf("create review failed: %w", err)
}
