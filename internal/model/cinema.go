package model

// Cinema represents a movie theatre venue in a city.  Cinema names are
// unique across all cities.  This struct corresponds to a row in the
// `Cinemas` table.
//
// Fields:
//
//	ID   – primary key identifier.
//	Name – globally unique name of the cinema.
//	City – city the cinema is located in.
type Cinema struct {
	ID   uint64 // Cinemas.ID
	Name string // Cinemas.Name
	City string // Cinemas.City
}
