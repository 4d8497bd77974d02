package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
)

// TicketRepo provides the only write path of the ticket desk: tickets are
// bought for a screening and removed by id.  Everything else in the store
// is seeded and read-only.  Purchase timestamps are stored in UTC.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketDetailQuery = `SELECT t.ID, t.TimePurchased, t.ScreeningID, ` + screeningColumns + `
               FROM Tickets t
               JOIN Screenings s ON s.ID = t.ScreeningID
               JOIN Movies m ON m.ID = s.MovieID
               JOIN Cinemas c ON c.ID = s.CinemaID`

func scanTicketDetail(d *model.TicketDetail) []any {
	return scanScreeningDetail(&d.Screening, &d.ID, &d.TimePurchased, &d.ScreeningID)
}

// List returns every ticket joined with its screening, movie and cinema,
// oldest purchase first.  Rows whose joins disagree with the foreign keys
// are skipped.
func (r *TicketRepo) List(ctx context.Context) ([]model.TicketDetail, error) {
	rows, err := r.db.QueryContext(ctx, ticketDetailQuery+`
               ORDER BY t.TimePurchased ASC, t.ID ASC`)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	out := []model.TicketDetail{}
	for rows.Next() {
		var d model.TicketDetail
		if err := rows.Scan(scanTicketDetail(&d)...); err != nil {
			return nil, err
		}
		if !d.Consistent() {
			log.Printf("repository: skipping ticket %d with mismatched join (screening %d/%d)",
				d.ID, d.ScreeningID, d.Screening.ID)
			continue
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, Translate(err)
	}
	return out, nil
}

// GetDetail loads a single ticket with its joins.  It returns ErrNotFound
// when the ticket does not exist.
func (r *TicketRepo) GetDetail(ctx context.Context, id uint64) (*model.TicketDetail, error) {
	var d model.TicketDetail
	err := r.db.QueryRowContext(ctx, ticketDetailQuery+`
               WHERE t.ID = ?`, id).Scan(scanTicketDetail(&d)...)
	if err != nil {
		return nil, Translate(err)
	}
	return &d, nil
}

// ExistsForScreening reports whether any ticket references the screening.
func (r *TicketRepo) ExistsForScreening(ctx context.Context, screeningID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM Tickets WHERE ScreeningID = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, screeningID).Scan(&exists); err != nil {
		return false, Translate(err)
	}
	return exists, nil
}

// CreateIfAbsent inserts a ticket for the screening unless one already
// exists.  The check and the insert run in one transaction that first
// locks the screening row, so two concurrent purchases for the same
// screening cannot both pass the check.  It returns the ticket for the
// screening and whether it was created by this call.  ErrNotFound is
// returned when the screening does not exist.
func (r *TicketRepo) CreateIfAbsent(ctx context.Context, screeningID uint64, purchasedAt time.Time) (t *model.Ticket, created bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, Translate(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lockedID uint64
	if err = tx.QueryRowContext(ctx, `SELECT ID FROM Screenings WHERE ID = ? FOR UPDATE`, screeningID).Scan(&lockedID); err != nil {
		return nil, false, Translate(err)
	}

	existing := &model.Ticket{}
	err = tx.QueryRowContext(ctx,
		`SELECT ID, TimePurchased, ScreeningID FROM Tickets WHERE ScreeningID = ? ORDER BY ID LIMIT 1`,
		screeningID,
	).Scan(&existing.ID, &existing.TimePurchased, &existing.ScreeningID)
	switch {
	case err == nil:
		if err = tx.Commit(); err != nil {
			return nil, false, Translate(err)
		}
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, false, Translate(err)
	}

	purchasedAt = purchasedAt.UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO Tickets (TimePurchased, ScreeningID) VALUES (?, ?)`,
		purchasedAt, screeningID,
	)
	if err != nil {
		return nil, false, Translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	if err = tx.Commit(); err != nil {
		return nil, false, Translate(err)
	}
	return &model.Ticket{ID: uint64(id), TimePurchased: purchasedAt, ScreeningID: screeningID}, true, nil
}

// DeleteByID removes a ticket and returns the removed row.  If the ticket
// does not exist, ErrNotFound is returned and nothing is changed.
func (r *TicketRepo) DeleteByID(ctx context.Context, id uint64) (t *model.Ticket, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, Translate(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	t = &model.Ticket{}
	if err = tx.QueryRowContext(ctx,
		`SELECT ID, TimePurchased, ScreeningID FROM Tickets WHERE ID = ? FOR UPDATE`, id,
	).Scan(&t.ID, &t.TimePurchased, &t.ScreeningID); err != nil {
		return nil, Translate(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM Tickets WHERE ID = ?`, id)
	if err != nil {
		return nil, Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, Translate(err)
	}
	return t, nil
}
