package handler

import (
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
)

// MovieView is the movie part of a screening as shown to clients.
type MovieView struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Runtime     int16  `json:"runtime_minutes"`
	RuntimeText string `json:"runtime"`
	ReleaseYear int    `json:"release_year"`
	PosterURL   string `json:"poster_url,omitempty"`
}

// CinemaView identifies the cinema of a screening.
type CinemaView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ScreeningView is one row of a cinema's schedule.
type ScreeningView struct {
	ID     uint64     `json:"id"`
	Time   string     `json:"time"`
	Clock  string     `json:"clock"`
	Hour   int        `json:"hour"`
	Minute int        `json:"minute"`
	Movie  MovieView  `json:"movie"`
	Cinema CinemaView `json:"cinema"`
}

// TicketView is a purchased ticket with its screening.
type TicketView struct {
	ID            uint64        `json:"id"`
	TimePurchased time.Time     `json:"time_purchased"`
	Screening     ScreeningView `json:"screening"`
}

// posterURL maps a stored poster path onto the /posters route.  Paths may
// use either slash direction.
func posterURL(p string) string {
	p = strings.Trim(strings.ReplaceAll(p, `\`, "/"), "/")
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "/posters/" + strings.Join(segs, "/")
}

func screeningView(s model.ScreeningDetail) ScreeningView {
	return ScreeningView{
		ID:     s.ID,
		Time:   s.Time.String(),
		Clock:  s.Time.Clock(),
		Hour:   s.Time.Hour(),
		Minute: s.Time.Minute(),
		Movie: MovieView{
			ID:          s.Movie.ID,
			Title:       s.Movie.Title,
			Runtime:     s.Movie.Runtime,
			RuntimeText: s.Movie.RuntimeLabel(),
			ReleaseYear: s.Movie.ReleaseYear(),
			PosterURL:   posterURL(s.Movie.PosterPath),
		},
		Cinema: CinemaView{ID: s.Cinema.ID, Name: s.Cinema.Name, City: s.Cinema.City},
	}
}

func ticketViews(ts []model.TicketDetail) []TicketView {
	out := make([]TicketView, 0, len(ts))
	for _, t := range ts {
		out = append(out, TicketView{
			ID:            t.ID,
			TimePurchased: t.TimePurchased.UTC(),
			Screening:     screeningView(t.Screening),
		})
	}
	return out
}
