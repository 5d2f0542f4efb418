package store

import (
	"context"
	"database/sql"
	"time"
)

const galleryColumns = `id, title, description, event_id, created_at, updated_at`

func scanGallery(row interface{ Scan(...any) error }) (Gallery, error) {
	var g Gallery
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.EventID, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

const listGalleries = `
SELECT ` + galleryColumns + ` FROM galleries ORDER BY created_at DESC
`

// ListGalleries returns all galleries, newest first.
func (q *Queries) ListGalleries(ctx context.Context) ([]Gallery, error) {
	rows, err := q.db.QueryContext(ctx, listGalleries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

const getGalleryByID = `
SELECT ` + galleryColumns + ` FROM galleries WHERE id = ?
`

// GetGalleryByID returns a single gallery or sql.ErrNoRows.
func (q *Queries) GetGalleryByID(ctx context.Context, id int64) (Gallery, error) {
	return scanGallery(q.db.QueryRowContext(ctx, getGalleryByID, id))
}

const createGallery = `
INSERT INTO galleries (title, description, event_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + galleryColumns

// CreateGalleryParams holds the parameters for CreateGallery.
type CreateGalleryParams struct {
	Title       string
	Description string
	EventID     sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateGallery persists a new gallery.
func (q *Queries) CreateGallery(ctx context.Context, arg CreateGalleryParams) (Gallery, error) {
	return scanGallery(q.db.QueryRowContext(ctx, createGallery,
		arg.Title, arg.Description, arg.EventID, arg.CreatedAt, arg.UpdatedAt))
}

const updateGallery = `
UPDATE galleries SET title = ?, description = ?, event_id = ?, updated_at = ?
WHERE id = ?
RETURNING ` + galleryColumns

// UpdateGalleryParams holds the parameters for UpdateGallery.
type UpdateGalleryParams struct {
	Title       string
	Description string
	EventID     sql.NullInt64
	UpdatedAt   time.Time
	ID          int64
}

// UpdateGallery overwrites the mutable columns of a gallery.
func (q *Queries) UpdateGallery(ctx context.Context, arg UpdateGalleryParams) (Gallery, error) {
	return scanGallery(q.db.QueryRowContext(ctx, updateGallery,
		arg.Title, arg.Description, arg.EventID, arg.UpdatedAt, arg.ID))
}

const deleteGallery = `
DELETE FROM galleries WHERE id = ?
`

// DeleteGallery removes a gallery. Its images are removed by the
// ON DELETE CASCADE constraint on gallery_images.gallery_id; the cascade is
// part of this method's contract, not application logic.
func (q *Queries) DeleteGallery(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGallery, id)
	return err
}

const galleryImageColumns = `id, gallery_id, url, public_id, alt, position, created_at`

func scanGalleryImage(row interface{ Scan(...any) error }) (GalleryImage, error) {
	var img GalleryImage
	err := row.Scan(&img.ID, &img.GalleryID, &img.Url, &img.PublicID, &img.Alt, &img.Position, &img.CreatedAt)
	return img, err
}

const listGalleryImages = `
SELECT ` + galleryImageColumns + ` FROM gallery_images WHERE gallery_id = ? ORDER BY position ASC, id ASC
`

// ListGalleryImages returns a gallery's images in display order.
func (q *Queries) ListGalleryImages(ctx context.Context, galleryID int64) ([]GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryImages, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GalleryImage
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

const createGalleryImage = `
INSERT INTO gallery_images (gallery_id, url, public_id, alt, position, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + galleryImageColumns

// CreateGalleryImageParams holds the parameters for CreateGalleryImage.
type CreateGalleryImageParams struct {
	GalleryID int64
	Url       string
	PublicID  string
	Alt       string
	Position  int64
	CreatedAt time.Time
}

// CreateGalleryImage adds an image to a gallery.
func (q *Queries) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (GalleryImage, error) {
	return scanGalleryImage(q.db.QueryRowContext(ctx, createGalleryImage,
		arg.GalleryID, arg.Url, arg.PublicID, arg.Alt, arg.Position, arg.CreatedAt))
}

const deleteGalleryImage = `
DELETE FROM gallery_images WHERE id = ? AND gallery_id = ?
`

// DeleteGalleryImageParams holds the parameters for DeleteGalleryImage.
type DeleteGalleryImageParams struct {
	ID        int64
	GalleryID int64
}

// DeleteGalleryImage removes one image from a gallery.
func (q *Queries) DeleteGalleryImage(ctx context.Context, arg DeleteGalleryImageParams) error {
	_, err := q.db.ExecContext(ctx, deleteGalleryImage, arg.ID, arg.GalleryID)
	return err
}

const countGalleryImages = `
SELECT COUNT(*) FROM gallery_images WHERE gallery_id = ?
`

// CountGalleryImages returns the number of images owned by a gallery.
func (q *Queries) CountGalleryImages(ctx context.Context, galleryID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countGalleryImages, galleryID).Scan(&count)
	return count, err
}
