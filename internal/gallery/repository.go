package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/pgerr"
)

type Repository interface {
	List(ctx context.Context, parentID int64) ([]*Image, error)
	GetByID(ctx context.Context, id int64) (*Image, error)
	// ParentOwner returns the user owning the parent row, or the kind's ErrParentNotFound.
	ParentOwner(ctx context.Context, parentID int64) (int64, error)
	Create(ctx context.Context, img *Image) error
	Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*Image, error)
	Delete(ctx context.Context, id int64, ownerID *int64) (*Image, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	kind Kind
	psql squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool, kind Kind) Repository {
	return &pgxRepository{
		pool: pool,
		kind: kind,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *pgxRepository) columns() []string {
	return []string{"image_id", r.kind.ParentColumn, "image_url", "position"}
}

func (r *pgxRepository) returning() string {
	return "RETURNING image_id, " + r.kind.ParentColumn + ", image_url, position"
}

func scanImage(row pgx.Row) (*Image, error) {
	var img Image
	if err := row.Scan(&img.ID, &img.ParentID, &img.URL, &img.Position); err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *pgxRepository) List(ctx context.Context, parentID int64) ([]*Image, error) {
	query, args, err := r.psql.Select(r.columns()...).
		From(r.kind.Table).
		Where(squirrel.Eq{r.kind.ParentColumn: parentID}).
		OrderBy("position ASC", "image_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s query failed: %w", r.kind.Table, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", r.kind.Table, err)
	}
	defer rows.Close()

	images := []*Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s failed: %w", r.kind.Table, err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Image, error) {
	query, args, err := r.psql.Select(r.columns()...).
		From(r.kind.Table).
		Where(squirrel.Eq{"image_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get %s query failed: %w", r.kind.Table, err)
	}

	img, err := scanImage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s failed: %w", r.kind.Table, err)
	}
	return img, nil
}

func (r *pgxRepository) ParentOwner(ctx context.Context, parentID int64) (int64, error) {
	var ownerID int64
	if err := r.pool.QueryRow(ctx, r.kind.OwnerQuery, parentID).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.kind.ErrParentNotFound
		}
		return 0, fmt.Errorf("get %s owner failed: %w", r.kind.ParentColumn, err)
	}
	return ownerID, nil
}

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	query, args, err := r.psql.Insert(r.kind.Table).
		Columns(r.kind.ParentColumn, "image_url", "position").
		Values(img.ParentID, img.URL, img.Position).
		Suffix("RETURNING image_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create %s query failed: %w", r.kind.Table, err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&img.ID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return r.kind.ErrParentNotFound
		}
		return fmt.Errorf("create %s failed: %w", r.kind.Table, err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, id int64, f Fields, ownerID *int64) (*Image, error) {
	cols := f.columns()
	if len(cols) == 0 {
		// No-op write; the scoped RETURNING still reports 404 for foreign rows.
		cols = map[string]any{"image_id": squirrel.Expr("image_id")}
	}

	q := r.psql.Update(r.kind.Table).SetMap(cols).Where(squirrel.Eq{"image_id": id})
	if ownerID != nil {
		q = q.Where(r.kind.ScopeClause, *ownerID)
	}

	query, args, err := q.Suffix(r.returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update %s query failed: %w", r.kind.Table, err)
	}

	img, err := scanImage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s failed: %w", r.kind.Table, err)
	}
	return img, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64, ownerID *int64) (*Image, error) {
	q := r.psql.Delete(r.kind.Table).Where(squirrel.Eq{"image_id": id})
	if ownerID != nil {
		q = q.Where(r.kind.ScopeClause, *ownerID)
	}

	query, args, err := q.Suffix(r.returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete %s query failed: %w", r.kind.Table, err)
	}

	img, err := scanImage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete %s failed: %w", r.kind.Table, err)
	}
	return img, nil
}
