package store

import (
	"context"
	"time"
)

const pageColumns = `id, slug, title, body, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listPages = `
SELECT ` + pageColumns + ` FROM pages ORDER BY title ASC
`

// ListPages returns all pages ordered by title.
func (q *Queries) ListPages(ctx context.Context) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, listPages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getPageByID = `
SELECT ` + pageColumns + ` FROM pages WHERE id = ?
`

// GetPageByID returns a single page or sql.ErrNoRows.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageByID, id))
}

const getPageBySlug = `
SELECT ` + pageColumns + ` FROM pages WHERE slug = ?
`

// GetPageBySlug returns a single page addressed by slug or sql.ErrNoRows.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageBySlug, slug))
}

const pageSlugExists = `
SELECT COUNT(*) FROM pages WHERE slug = ? AND id != ?
`

// PageSlugExistsParams holds the parameters for PageSlugExists.
type PageSlugExistsParams struct {
	Slug string
	ID   int64
}

// PageSlugExists reports whether a slug is taken by a different page.
func (q *Queries) PageSlugExists(ctx context.Context, arg PageSlugExistsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, pageSlugExists, arg.Slug, arg.ID).Scan(&count)
	return count, err
}

const createPage = `
INSERT INTO pages (slug, title, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + pageColumns

// CreatePageParams holds the parameters for CreatePage.
type CreatePageParams struct {
	Slug      string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePage persists a new page.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, createPage,
		arg.Slug, arg.Title, arg.Body, arg.CreatedAt, arg.UpdatedAt))
}

const updatePage = `
UPDATE pages SET slug = ?, title = ?, body = ?, updated_at = ?
WHERE id = ?
RETURNING ` + pageColumns

// UpdatePageParams holds the parameters for UpdatePage.
type UpdatePageParams struct {
	Slug      string
	Title     string
	Body      string
	UpdatedAt time.Time
	ID        int64
}

// UpdatePage overwrites the mutable columns of a page.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, updatePage,
		arg.Slug, arg.Title, arg.Body, arg.UpdatedAt, arg.ID))
}

const deletePage = `
DELETE FROM pages WHERE id = ?
`

// DeletePage removes a page.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePage, id)
	return err
}
