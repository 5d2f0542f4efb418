package store

import (
	"context"
	"time"
)

const contactColumns = `id, name, email, phone, subject, message, is_read, created_at`

func scanContact(row interface{ Scan(...any) error }) (Contact, error) {
	var c Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt)
	return c, err
}

const listContacts = `
SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC
`

// ListContacts returns all contact messages, newest first.
func (q *Queries) ListContacts(ctx context.Context) ([]Contact, error) {
	rows, err := q.db.QueryContext(ctx, listContacts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getContactByID = `
SELECT ` + contactColumns + ` FROM contacts WHERE id = ?
`

// GetContactByID returns a single contact message or sql.ErrNoRows.
func (q *Queries) GetContactByID(ctx context.Context, id int64) (Contact, error) {
	return scanContact(q.db.QueryRowContext(ctx, getContactByID, id))
}

const createContact = `
INSERT INTO contacts (name, email, phone, subject, message, is_read, created_at)
VALUES (?, ?, ?, ?, ?, 0, ?)
RETURNING ` + contactColumns

// CreateContactParams holds the parameters for CreateContact.
type CreateContactParams struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// CreateContact persists a submitted contact-form message, unread.
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (Contact, error) {
	return scanContact(q.db.QueryRowContext(ctx, createContact,
		arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message, arg.CreatedAt))
}

const markContactRead = `
UPDATE contacts SET is_read = 1 WHERE id = ?
RETURNING ` + contactColumns

// MarkContactRead flags a contact message as read.
func (q *Queries) MarkContactRead(ctx context.Context, id int64) (Contact, error) {
	return scanContact(q.db.QueryRowContext(ctx, markContactRead, id))
}

const deleteContact = `
DELETE FROM contacts WHERE id = ?
`

// DeleteContact removes a contact message.
func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteContact, id)
	return err
}

const countUnreadContacts = `
SELECT COUNT(*) FROM contacts WHERE is_read = 0
`

// CountUnreadContacts returns the number of unread contact messages.
func (q *Queries) CountUnreadContacts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUnreadContacts).Scan(&count)
	return count, err
}
