// Package repository contains data access logic for screenings. A
// screening is a recurring showing of a movie at a cinema at a fixed time
// of day. Screenings are read together with their movie and cinema so the
// presentation layer never has to follow foreign keys itself.
package repository

import (
	"context"
	"database/sql"
	"log"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
)

// ScreeningRepo manages read access to screenings.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo {
	return &ScreeningRepo{db: db}
}

// screeningColumns selects a screening joined with its movie and cinema in
// the order expected by scanScreeningDetail.
const screeningColumns = `s.ID, s.Time, s.MovieID, s.CinemaID,
	m.ID, m.Title, m.Runtime, m.ReleaseDate, m.PosterPath,
	c.ID, c.Name, c.City`

// scanScreeningDetail appends the destinations for screeningColumns to dest.
func scanScreeningDetail(d *model.ScreeningDetail, dest ...any) []any {
	return append(dest,
		&d.ID, &d.Time, &d.MovieID, &d.CinemaID,
		&d.Movie.ID, &d.Movie.Title, &d.Movie.Runtime, &d.Movie.ReleaseDate, &d.Movie.PosterPath,
		&d.Cinema.ID, &d.Cinema.Name, &d.Cinema.City,
	)
}

// ListByCinemaName returns the screenings of the cinema called name,
// joined with movie and cinema, ordered by time of day ascending.  When no
// cinema has that name the result is an empty slice and nil error.  Rows
// whose joined movie or cinema does not match the screening's foreign keys
// are skipped.
func (r *ScreeningRepo) ListByCinemaName(ctx context.Context, name string) ([]model.ScreeningDetail, error) {
	const q = `SELECT ` + screeningColumns + `
               FROM Screenings s
               JOIN Movies m ON m.ID = s.MovieID
               JOIN Cinemas c ON c.ID = s.CinemaID
               WHERE c.Name = ?
               ORDER BY s.Time ASC, s.ID ASC`
	rows, err := r.db.QueryContext(ctx, q, name)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	result := []model.ScreeningDetail{}
	for rows.Next() {
		var d model.ScreeningDetail
		if err := rows.Scan(scanScreeningDetail(&d)...); err != nil {
			return nil, err
		}
		if !d.Consistent() {
			log.Printf("repository: skipping screening %d with mismatched join (movie %d/%d, cinema %d/%d)",
				d.ID, d.MovieID, d.Movie.ID, d.CinemaID, d.Cinema.ID)
			continue
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, Translate(err)
	}
	return result, nil
}
