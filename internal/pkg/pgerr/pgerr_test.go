package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reservations_active_slot_key"}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	check := &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "time_slots_range_check"}

	t.Run("Unique violation survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("create reservation failed: %w", unique)
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsForeignKeyViolation(err))
		assert.Equal(t, "reservations_active_slot_key", ConstraintName(err))
	})

	t.Run("Foreign key violation", func(t *testing.T) {
		assert.True(t, IsForeignKeyViolation(fk))
		assert.False(t, IsUniqueViolation(fk))
	})

	t.Run("Check violation", func(t *testing.T) {
		assert.True(t, IsCheckViolation(check))
		assert.Equal(t, "time_slots_range_check", ConstraintName(check))
	})

	t.Run("Plain errors are never constraint violations", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.False(t, IsUniqueViolation(err))
		assert.False(t, IsForeignKeyViolation(err))
		assert.False(t, IsCheckViolation(err))
		assert.Empty(t, ConstraintName(err))
	})
}
