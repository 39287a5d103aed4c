// Package pgerr classifies Postgres driver errors so repositories can turn
// constraint violations into domain errors instead of 500s.
package pgerr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func code(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// IsUniqueViolation reports a 23505 error.
func IsUniqueViolation(err error) bool {
	c, _, ok := code(err)
	return ok && c == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports a 23503 error.
func IsForeignKeyViolation(err error) bool {
	c, _, ok := code(err)
	return ok && c == pgerrcode.ForeignKeyViolation
}

// IsCheckViolation reports a 23514 error.
func IsCheckViolation(err error) bool {
	c, _, ok := code(err)
	return ok && c == pgerrcode.CheckViolation
}

// IsInvalidText reports malformed input rejected by a cast, e.g. a bad date or time literal.
func IsInvalidText(err error) bool {
	c, _, ok := code(err)
	return ok && (c == pgerrcode.InvalidTextRepresentation || c == pgerrcode.InvalidDatetimeFormat || c == pgerrcode.DatetimeFieldOverflow)
}

// ConstraintName returns the violated constraint, or "" when err is not a PgError.
func ConstraintName(err error) string {
	_, name, _ := code(err)
	return name
}
