package review

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/club-booking-backend/internal/club"
)

func TestTranslateCreate(t *testing.T) {
	t.Run("Unknown Author", func(t *testing.T) {
		err := translateCreate(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "reviews_user_id_fkey"})
		assert.ErrorIs(t, err, ErrUnknownAuthor)
	})

	t.Run("Club Deleted Meanwhile", func(t *testing.T) {
		err := translateCreate(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "reviews_club_id_fkey"})
		assert.ErrorIs(t, err, club.ErrNotFound)
	})

	t.Run("Stars Check", func(t *testing.T) {
		err := translateCreate(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "reviews_stars_check"})
		assert.ErrorIs(t, err, ErrInvalidStars)
	})

	t.Run("Unexpected", func(t *testing.T) {
		err := translateCreate(errors.New("boom"))
		assert.NotErrorIs(t, err, ErrUnknownAuthor)
		assert.Contains(t, err.Error(), "create review failed")
	})
}
