package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
)

// Desk is the ticket side of the ticket desk.
type Desk interface {
	ListTickets(ctx context.Context) ([]model.TicketDetail, error)
	HasTicketForScreening(ctx context.Context, screeningID uint64) (bool, error)
	PurchaseTicket(ctx context.Context, screeningID uint64) (bool, error)
	RemoveTicket(ctx context.Context, ticketID uint64) error
}

// TicketHandler exposes ticket listing, purchase and removal.
type TicketHandler struct {
	Desk Desk
}

func NewTicketHandler(desk Desk) *TicketHandler {
	if desk == nil {
		panic("nil desk passed to NewTicketHandler")
	}
	return &TicketHandler{Desk: desk}
}

// List returns every ticket, oldest purchase first.
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.Desk.ListTickets(c.Request().Context())
	if err != nil {
		return respondError(c, err, "ticket")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ticketViews(tickets)})
}

// HasTicket reports whether a screening already has its ticket.
func (h *TicketHandler) HasTicket(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	has, err := h.Desk.HasTicketForScreening(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "screening")
	}
	return c.JSON(http.StatusOK, echo.Map{"screening_id": id, "has_ticket": has})
}

// Purchase buys the ticket for a screening.  Buying again is a no-op that
// answers 200 instead of 201; either way the refreshed ticket list is
// returned.
func (h *TicketHandler) Purchase(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	created, err := h.Desk.PurchaseTicket(ctx, id)
	if err != nil {
		return respondError(c, err, "screening")
	}
	tickets, err := h.Desk.ListTickets(ctx)
	if err != nil {
		return respondError(c, err, "ticket")
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"purchased": created, "items": ticketViews(tickets)})
}

// Remove deletes a ticket.
func (h *TicketHandler) Remove(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Desk.RemoveTicket(c.Request().Context(), id); err != nil {
		return respondError(c, err, "ticket")
	}
	return c.NoContent(http.StatusNoContent)
}
