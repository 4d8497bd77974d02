// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Queue names used for ticket events.  Each event type gets its own
// durable queue.
const (
	TicketPurchasedQueue = "ticket.purchased"
	TicketRemovedQueue   = "ticket.removed"
)

// TicketEvent is published when a ticket is bought or removed.  It
// carries enough of the joined screening for downstream consumers to log
// or notify without querying the primary database.  Fields describing the
// screening may be empty for removals when the details were not loaded.
type TicketEvent struct {
	TicketID      uint64 `json:"ticket_id"`
	ScreeningID   uint64 `json:"screening_id"`
	CinemaName    string `json:"cinema_name,omitempty"`
	City          string `json:"city,omitempty"`
	MovieTitle    string `json:"movie_title,omitempty"`
	ShowTime      string `json:"show_time,omitempty"`
	TimePurchased string `json:"time_purchased"`
	OccurredAt    string `json:"occurred_at"`
}
