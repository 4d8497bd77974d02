package model

// Screening represents a recurring showing of a movie at a cinema.  It
// has no calendar date: Time is the time of day at which the movie is
// shown.  This struct corresponds to a row in the `Screenings` table.
//
// Fields:
//
//	ID       – primary key identifier.
//	Time     – start time of day, second precision.
//	MovieID  – movie being shown.
//	CinemaID – cinema showing the movie.
type Screening struct {
	ID       uint64   // Screenings.ID
	Time     ShowTime // Screenings.Time
	MovieID  uint64   // Screenings.MovieID
	CinemaID uint64   // Screenings.CinemaID
}

// ScreeningDetail is a screening joined with its movie and cinema.
type ScreeningDetail struct {
	Screening
	Movie  Movie
	Cinema Cinema
}

// Consistent reports whether the joined movie and cinema are the ones the
// screening references.
func (d ScreeningDetail) Consistent() bool {
	return d.MovieID == d.Movie.ID && d.CinemaID == d.Cinema.ID
}
