// Package repository contains data access logic separated from HTTP handlers.
// This file defines the read-only lookups over cinemas used to browse by
// city. Cinemas are seeded ahead of time; the ticket desk never creates,
// renames or deletes them.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
)

// CinemaRepo encapsulates all database queries related to cinemas.  It
// depends on a sql.DB connection which should be configured elsewhere.
type CinemaRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewCinemaRepo constructs a CinemaRepo with the provided DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

// ListCities returns every city that has at least one cinema, without
// duplicates, in ascending order.
func (r *CinemaRepo) ListCities(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT City FROM Cinemas ORDER BY City`
	return r.strings(ctx, q)
}

// ListNamesByCity returns the names of the cinemas located in city.  The
// match is exact.  Names are ordered so repeated calls agree.
func (r *CinemaRepo) ListNamesByCity(ctx context.Context, city string) ([]string, error) {
	const q = `SELECT Name FROM Cinemas WHERE City = ? ORDER BY Name`
	return r.strings(ctx, q, city)
}

// strings runs a single-column query and collects the values.  An empty
// result is returned as an empty, non-nil slice.
func (r *CinemaRepo) strings(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, Translate(err)
	}
	return out, nil
}
