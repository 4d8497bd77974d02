package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
	q "github.com/iliyamo/cinema-ticket-desk/internal/queue"
)

// CinemaStore is the cinema lookup used for browsing.
type CinemaStore interface {
	ListCities(ctx context.Context) ([]string, error)
	ListNamesByCity(ctx context.Context, city string) ([]string, error)
}

// ScreeningStore lists screenings with their joins.
type ScreeningStore interface {
	ListByCinemaName(ctx context.Context, name string) ([]model.ScreeningDetail, error)
}

// TicketStore persists tickets.
type TicketStore interface {
	List(ctx context.Context) ([]model.TicketDetail, error)
	GetDetail(ctx context.Context, id uint64) (*model.TicketDetail, error)
	ExistsForScreening(ctx context.Context, screeningID uint64) (bool, error)
	CreateIfAbsent(ctx context.Context, screeningID uint64, purchasedAt time.Time) (*model.Ticket, bool, error)
	DeleteByID(ctx context.Context, id uint64) (*model.Ticket, error)
}

// EventPublisher delivers ticket events to a queue.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, event q.TicketEvent) error
}

// Cache keeps encoded browse results.  Implementations must treat every
// failure as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
}

// TicketDesk implements the browse and ticket operations.  Persistence
// errors are returned unchanged so callers can inspect them with
// errors.Is against the repository sentinels.  The cache and publisher
// are optional; when set they are used best effort and never fail an
// operation.
type TicketDesk struct {
	Cinemas    CinemaStore
	Screenings ScreeningStore
	Tickets    TicketStore
	Cache      Cache          // optional
	Events     EventPublisher // optional
	Now        func() time.Time
}

// NewTicketDesk wires a TicketDesk and panics if any store is nil.
func NewTicketDesk(cinemas CinemaStore, screenings ScreeningStore, tickets TicketStore) *TicketDesk {
	if cinemas == nil || screenings == nil || tickets == nil {
		panic("nil store passed to NewTicketDesk")
	}
	return &TicketDesk{Cinemas: cinemas, Screenings: screenings, Tickets: tickets, Now: time.Now}
}

// ListCities returns the distinct cities with a cinema, ascending.
func (d *TicketDesk) ListCities(ctx context.Context) ([]string, error) {
	return d.cachedStrings(ctx, "cities", d.Cinemas.ListCities)
}

// ListCinemaNames returns the names of the cinemas in city.
func (d *TicketDesk) ListCinemaNames(ctx context.Context, city string) ([]string, error) {
	return d.cachedStrings(ctx, "cinemas:"+city, func(ctx context.Context) ([]string, error) {
		return d.Cinemas.ListNamesByCity(ctx, city)
	})
}

// ListScreenings returns the screenings of the named cinema ordered by
// time of day.
func (d *TicketDesk) ListScreenings(ctx context.Context, cinemaName string) ([]model.ScreeningDetail, error) {
	return d.Screenings.ListByCinemaName(ctx, cinemaName)
}

// ListTickets returns every ticket, oldest purchase first.
func (d *TicketDesk) ListTickets(ctx context.Context) ([]model.TicketDetail, error) {
	return d.Tickets.List(ctx)
}

// HasTicketForScreening reports whether the screening already has a ticket.
func (d *TicketDesk) HasTicketForScreening(ctx context.Context, screeningID uint64) (bool, error) {
	return d.Tickets.ExistsForScreening(ctx, screeningID)
}

// PurchaseTicket buys a ticket for the screening stamped with the current
// time, unless one already exists, in which case nothing changes.  It
// reports whether a ticket was created.
func (d *TicketDesk) PurchaseTicket(ctx context.Context, screeningID uint64) (bool, error) {
	t, created, err := d.Tickets.CreateIfAbsent(ctx, screeningID, d.now())
	if err != nil {
		return false, err
	}
	if created {
		d.publish(ctx, q.TicketPurchasedQueue, d.purchasedEvent(ctx, t))
	}
	return created, nil
}

// RemoveTicket deletes the ticket.  It fails with repository.ErrNotFound
// when no such ticket exists.
func (d *TicketDesk) RemoveTicket(ctx context.Context, ticketID uint64) error {
	t, err := d.Tickets.DeleteByID(ctx, ticketID)
	if err != nil {
		return err
	}
	d.publish(ctx, q.TicketRemovedQueue, d.event(t))
	return nil
}

func (d *TicketDesk) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *TicketDesk) event(t *model.Ticket) q.TicketEvent {
	return q.TicketEvent{
		TicketID:      t.ID,
		ScreeningID:   t.ScreeningID,
		TimePurchased: t.TimePurchased.UTC().Format(time.RFC3339),
		OccurredAt:    d.now().UTC().Format(time.RFC3339),
	}
}

// purchasedEvent enriches the event with the joined screening when it can
// be loaded; a failed lookup only costs the extra fields.
func (d *TicketDesk) purchasedEvent(ctx context.Context, t *model.Ticket) q.TicketEvent {
	ev := d.event(t)
	if d.Events == nil {
		return ev
	}
	det, err := d.Tickets.GetDetail(ctx, t.ID)
	if err != nil {
		log.Printf("ticketdesk: load ticket %d for event: %v", t.ID, err)
		return ev
	}
	ev.CinemaName = det.Screening.Cinema.Name
	ev.City = det.Screening.Cinema.City
	ev.MovieTitle = det.Screening.Movie.Title
	ev.ShowTime = det.Screening.Time.String()
	return ev
}

func (d *TicketDesk) publish(ctx context.Context, queue string, ev q.TicketEvent) {
	if d.Events == nil {
		return
	}
	if err := d.Events.Publish(ctx, queue, ev); err != nil {
		log.Printf("ticketdesk: publish %s for ticket %d: %v", queue, ev.TicketID, err)
	}
}

// cachedStrings serves a string list from the cache, falling back to load
// and storing its result on a miss.
func (d *TicketDesk) cachedStrings(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if d.Cache != nil {
		if bs, ok := d.Cache.Get(ctx, key); ok {
			var out []string
			if err := json.Unmarshal(bs, &out); err == nil {
				return out, nil
			}
		}
	}
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if d.Cache != nil {
		if bs, err := json.Marshal(out); err == nil {
			d.Cache.Set(ctx, key, bs)
		}
	}
	return out, nil
}
