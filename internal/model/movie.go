package model

import (
	"fmt"
	"time"
)

// Movie represents a film that can be screened at one or more cinemas.
// Movies are seeded ahead of time and never modified by the ticket desk.
// This struct corresponds to a row in the `Movies` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	Title       – display title of the movie.
//	Runtime     – running time in minutes.
//	ReleaseDate – release date (the time component is always midnight UTC).
//	PosterPath  – poster file name relative to the poster directory.
type Movie struct {
	ID          uint64    // Movies.ID
	Title       string    // Movies.Title
	Runtime     int16     // Movies.Runtime
	ReleaseDate time.Time // Movies.ReleaseDate
	PosterPath  string    // Movies.PosterPath
}

// RuntimeLabel renders the runtime as hours and minutes, e.g. "2h 5m".
func (m Movie) RuntimeLabel() string {
	mins := int(m.Runtime)
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// ReleaseYear returns the year part of the release date.
func (m Movie) ReleaseYear() int {
	return m.ReleaseDate.Year()
}
