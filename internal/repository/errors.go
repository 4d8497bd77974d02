// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors. For example, ErrNotFound indicates that a
// delete targeted a row that does not exist, while ErrConstraint signals
// that the store rejected a write because of a unique or foreign key
// constraint.
package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when an operation targets a row that does not
// exist. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConstraint is returned when a write violates a unique or foreign key
// constraint. Handlers should translate this into an HTTP 409 response.
var ErrConstraint = errors.New("constraint violation")

// ErrUnavailable is returned when the database cannot be reached.
// Handlers should translate this into an HTTP 503 response.
var ErrUnavailable = errors.New("database unavailable")

// MySQL server error numbers mapped onto ErrConstraint.
const (
	mysqlDuplicateEntry    = 1062
	mysqlRowIsReferenced   = 1451
	mysqlNoReferencedRow   = 1452
	mysqlRowIsReferenced2  = 1217
	mysqlNoReferencedRow2  = 1216
	mysqlColumnCannotBeNil = 1048
)

// Translate wraps a driver error with the matching sentinel so callers can
// use errors.Is. Errors that already carry a sentinel, and errors with no
// mapping, are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraint) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow,
			mysqlRowIsReferenced2, mysqlNoReferencedRow2, mysqlColumnCannotBeNil:
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		}
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
