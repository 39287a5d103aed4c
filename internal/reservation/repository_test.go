package reservation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("Booking Reference Collision Is Retryable", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: bookingIDConstraint})
		assert.ErrorIs(t, translate(err), errBookingIDTaken)
	})

	t.Run("Active Slot Index Is A Conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reservations_active_slot_key"}
		assert.ErrorIs(t, translate(err), ErrAlreadyBooked)
	})

	t.Run("Foreign Key", func(t *testing.T) {
		err := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "reservations_user_id_fkey"}
		assert.ErrorIs(t, translate(err), ErrInvalidForeignKey)
	})

	t.Run("Bad Date Text", func(t *testing.T) {
		err := &pgconn.PgError{Code: pgerrcode.InvalidDatetimeFormat}
		assert.ErrorIs(t, translate(err), ErrInvalidDate)
	})

	t.Run("Unrelated Errors Pass Through", func(t *testing.T) {
		assert.NoError(t, translate(errors.New("conn reset")))
	})
}
