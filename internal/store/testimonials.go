package store

import (
	"context"
	"database/sql"
	"time"
)

const testimonialColumns = `id, author, location, text, rating, is_published, created_at`

func scanTestimonial(row interface{ Scan(...any) error }) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(&t.ID, &t.Author, &t.Location, &t.Text, &t.Rating, &t.IsPublished, &t.CreatedAt)
	return t, err
}

const listTestimonials = `
SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY created_at DESC
`

const listPublishedTestimonials = `
SELECT ` + testimonialColumns + ` FROM testimonials WHERE is_published = 1 ORDER BY created_at DESC
`

// ListTestimonials returns testimonials, newest first. When publishedOnly is
// true, unpublished entries are excluded.
func (q *Queries) ListTestimonials(ctx context.Context, publishedOnly bool) ([]Testimonial, error) {
	query := listTestimonials
	if publishedOnly {
		query = listPublishedTestimonials
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const getTestimonialByID = `
SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = ?
`

// GetTestimonialByID returns a single testimonial or sql.ErrNoRows.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, getTestimonialByID, id))
}

const createTestimonial = `
INSERT INTO testimonials (author, location, text, rating, is_published, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + testimonialColumns

// CreateTestimonialParams holds the parameters for CreateTestimonial.
type CreateTestimonialParams struct {
	Author      string
	Location    string
	Text        string
	Rating      sql.NullInt64
	IsPublished int64
	CreatedAt   time.Time
}

// CreateTestimonial persists a new testimonial.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, createTestimonial,
		arg.Author, arg.Location, arg.Text, arg.Rating, arg.IsPublished, arg.CreatedAt))
}

const updateTestimonial = `
UPDATE testimonials SET author = ?, location = ?, text = ?, rating = ?, is_published = ?
WHERE id = ?
RETURNING ` + testimonialColumns

// UpdateTestimonialParams holds the parameters for UpdateTestimonial.
type UpdateTestimonialParams struct {
	Author      string
	Location    string
	Text        string
	Rating      sql.NullInt64
	IsPublished int64
	ID          int64
}

// UpdateTestimonial overwrites the mutable columns of a testimonial.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, updateTestimonial,
		arg.Author, arg.Location, arg.Text, arg.Rating, arg.IsPublished, arg.ID))
}

const deleteTestimonial = `
DELETE FROM testimonials WHERE id = ?
`

// DeleteTestimonial removes a testimonial.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTestimonial, id)
	return err
}
