// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services to distinguish between different failure scenarios without
// depending on the MySQL driver.
package repository

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by id or email matches no row.
// Services translate it into a not-found or authentication error.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create when the unique index on
// users.email rejects the insert.
var ErrEmailExists = errors.New("email already exists")

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// Constraint reasons reported by ConstraintError.
const (
	ReasonTooLong  = "too_long"
	ReasonRequired = "required"
	ReasonInvalid  = "invalid"
)

// ConstraintError reports a value the table rejected for Column.  Services
// turn it into a field-level validation message.
type ConstraintError struct {
	Column string
	Reason string
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("column %s: %s", e.Column, e.Reason)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// constraintReasons maps MySQL server error numbers to a reason.
var constraintReasons = map[uint16]string{
	1406: ReasonTooLong,  // ER_DATA_TOO_LONG
	1265: ReasonTooLong,  // WARN_DATA_TRUNCATED
	1048: ReasonRequired, // ER_BAD_NULL_ERROR
	1364: ReasonRequired, // ER_NO_DEFAULT_FOR_FIELD
	1366: ReasonInvalid,  // ER_TRUNCATED_WRONG_VALUE_FOR_FIELD
}

var columnInMessage = regexp.MustCompile(`(?i)(?:column|field) '([^']+)'`)

// asConstraint converts a MySQL constraint violation into a
// *ConstraintError and returns any other error unchanged.
func asConstraint(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	reason, ok := constraintReasons[me.Number]
	if !ok {
		return err
	}
	column := ""
	if m := columnInMessage.FindStringSubmatch(me.Message); m != nil {
		column = m[1]
	}
	return &ConstraintError{Column: column, Reason: reason, Err: err}
}
