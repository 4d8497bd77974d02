package model

import "time"

// Ticket records the purchase of a ticket for a screening.  At most one
// ticket exists per screening.  This struct corresponds to a row in the
// `Tickets` table.
//
// Fields:
//
//	ID            – primary key identifier.
//	TimePurchased – when the ticket was bought.
//	ScreeningID   – screening the ticket admits to.
type Ticket struct {
	ID            uint64    // Tickets.ID
	TimePurchased time.Time // Tickets.TimePurchased
	ScreeningID   uint64    // Tickets.ScreeningID
}

// TicketDetail is a ticket joined with its screening and, through the
// screening, the movie and cinema.
type TicketDetail struct {
	Ticket
	Screening ScreeningDetail
}

// Consistent reports whether every joined record matches the foreign key
// that references it.
func (d TicketDetail) Consistent() bool {
	return d.ScreeningID == d.Screening.ID && d.Screening.Consistent()
}
