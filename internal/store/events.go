package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, title, description, start_date, end_date, location, price, currency, status, cover_url, schedule, included, excluded, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.Location, &e.Price, &e.Currency, &e.Status, &e.CoverUrl,
		&e.Schedule, &e.Included, &e.Excluded, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

const listEventsAsc = `
SELECT ` + eventColumns + ` FROM events ORDER BY start_date ASC
`

const listEventsDesc = `
SELECT ` + eventColumns + ` FROM events ORDER BY start_date DESC
`

// ListEvents returns all events ordered by start date.
func (q *Queries) ListEvents(ctx context.Context, descending bool) ([]Event, error) {
	query := listEventsAsc
	if descending {
		query = listEventsDesc
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const listEventsByStatus = `
SELECT ` + eventColumns + ` FROM events WHERE status = ? ORDER BY start_date ASC
`

// ListEventsByStatus returns events with the given status, earliest first.
func (q *Queries) ListEventsByStatus(ctx context.Context, status string) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByStatus, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const getEventByID = `
SELECT ` + eventColumns + ` FROM events WHERE id = ?
`

// GetEventByID returns a single event or sql.ErrNoRows.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEventByID, id))
}

const createEvent = `
INSERT INTO events (
    title, description, start_date, end_date, location, price, currency,
    status, cover_url, schedule, included, excluded, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

// CreateEventParams holds the parameters for CreateEvent.
type CreateEventParams struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     sql.NullTime
	Location    string
	Price       float64
	Currency    string
	Status      string
	CoverUrl    string
	Schedule    string
	Included    string
	Excluded    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEvent persists a new event.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, createEvent,
		arg.Title, arg.Description, arg.StartDate, arg.EndDate, arg.Location,
		arg.Price, arg.Currency, arg.Status, arg.CoverUrl, arg.Schedule,
		arg.Included, arg.Excluded, arg.CreatedAt, arg.UpdatedAt,
	))
}

const updateEvent = `
UPDATE events SET
    title = ?, description = ?, start_date = ?, end_date = ?, location = ?,
    price = ?, currency = ?, status = ?, cover_url = ?, schedule = ?,
    included = ?, excluded = ?, updated_at = ?
WHERE id = ?
RETURNING ` + eventColumns

// UpdateEventParams holds the parameters for UpdateEvent.
type UpdateEventParams struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     sql.NullTime
	Location    string
	Price       float64
	Currency    string
	Status      string
	CoverUrl    string
	Schedule    string
	Included    string
	Excluded    string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateEvent overwrites all mutable columns of an event.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, updateEvent,
		arg.Title, arg.Description, arg.StartDate, arg.EndDate, arg.Location,
		arg.Price, arg.Currency, arg.Status, arg.CoverUrl, arg.Schedule,
		arg.Included, arg.Excluded, arg.UpdatedAt, arg.ID,
	))
}

const deleteEvent = `
DELETE FROM events WHERE id = ?
`

// DeleteEvent removes an event.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteEvent, id)
	return err
}

const countEvents = `
SELECT COUNT(*) FROM events
`

// CountEvents returns the total number of events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&count)
	return count, err
}
