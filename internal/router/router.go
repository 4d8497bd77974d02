package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-desk/internal/handler"
)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Health  echo.HandlerFunc
	Browse  *handler.BrowseHandler
	Tickets *handler.TicketHandler
	Posters *handler.PosterHandler
}

// RegisterRoutes registers the health check, the browse API, the ticket API
// and the poster store.  cache wraps the screening schedule and limit wraps
// the ticket mutations; either may be a pass-through.  City and cinema lists
// are cached by the desk itself and are not cached again here.
func RegisterRoutes(e *echo.Echo, h Handlers, cache, limit echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health)

	v1 := e.Group("/v1")
	v1.GET("/cities", h.Browse.Cities)
	v1.GET("/cities/:city/cinemas", h.Browse.CinemasByCity)
	v1.GET("/cinemas/:name/screenings", h.Browse.ScreeningsByCinema, cache)

	// Ticket state is read live.
	v1.GET("/tickets", h.Tickets.List)
	v1.GET("/screenings/:id/ticket", h.Tickets.HasTicket)
	v1.POST("/screenings/:id/tickets", h.Tickets.Purchase, limit)
	v1.DELETE("/tickets/:id", h.Tickets.Remove, limit)

	e.GET("/posters/*", h.Posters.Serve)
}
