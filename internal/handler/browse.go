package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
)

// Browser is the read side of the ticket desk.
type Browser interface {
	ListCities(ctx context.Context) ([]string, error)
	ListCinemaNames(ctx context.Context, city string) ([]string, error)
	ListScreenings(ctx context.Context, cinemaName string) ([]model.ScreeningDetail, error)
}

// BrowseHandler serves the city → cinema → screening drill-down.
type BrowseHandler struct {
	Desk Browser
}

// NewBrowseHandler panics on a nil desk.
func NewBrowseHandler(desk Browser) *BrowseHandler {
	if desk == nil {
		panic("nil desk passed to NewBrowseHandler")
	}
	return &BrowseHandler{Desk: desk}
}

// Cities lists every city with at least one cinema.
func (h *BrowseHandler) Cities(c echo.Context) error {
	cities, err := h.Desk.ListCities(c.Request().Context())
	if err != nil {
		return respondError(c, err, "city")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cities})
}

// CinemasByCity lists the cinema names of one city.  An unknown city is an
// empty list rather than a 404.
func (h *BrowseHandler) CinemasByCity(c echo.Context) error {
	city, err := pathParam(c, "city")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid city"})
	}
	names, err := h.Desk.ListCinemaNames(c.Request().Context(), city)
	if err != nil {
		return respondError(c, err, "city")
	}
	return c.JSON(http.StatusOK, echo.Map{"city": city, "items": names})
}

// ScreeningsByCinema lists a cinema's screenings ordered by time of day.
func (h *BrowseHandler) ScreeningsByCinema(c echo.Context) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema name"})
	}
	screenings, err := h.Desk.ListScreenings(c.Request().Context(), name)
	if err != nil {
		return respondError(c, err, "cinema")
	}
	out := make([]ScreeningView, 0, len(screenings))
	for _, s := range screenings {
		out = append(out, screeningView(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"cinema": name, "items": out})
}
