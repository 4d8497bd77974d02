package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func errBadConn() error { return fmt.Errorf("query: %w", driver.ErrBadConn) }

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "no rows", in: sql.ErrNoRows, want: ErrNotFound},
		{name: "duplicate entry", in: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Odeon'"}, want: ErrConstraint},
		{name: "missing parent", in: &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, want: ErrConstraint},
		{name: "referenced row", in: &mysql.MySQLError{Number: 1451}, want: ErrConstraint},
		{name: "bad conn", in: errBadConn(), want: ErrUnavailable},
		{name: "invalid conn", in: mysql.ErrInvalidConn, want: ErrUnavailable},
		{name: "dial failure", in: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: ErrUnavailable},
		{name: "already translated", in: ErrNotFound, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslatePassesThroughUnknownErrors(t *testing.T) {
	assert.Nil(t, Translate(nil))

	other := errors.New("syntax error")
	assert.Same(t, other, Translate(other))

	syntax := &mysql.MySQLError{Number: 1064}
	got := Translate(syntax)
	assert.False(t, errors.Is(got, ErrConstraint))
	assert.False(t, errors.Is(got, ErrUnavailable))
}
