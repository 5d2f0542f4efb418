package store

import (
	"database/sql"
	"time"
)

// Setting is the single-row admin secret record. The lowest-id row is
// authoritative.
type Setting struct {
	ID        int64
	Secret    string
	UpdatedAt time.Time
}

// Event is a pilgrimage trip in the public catalog.
type Event struct {
	ID          int64
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

// Gallery is a photo gallery, optionally attached to an event.
type Gallery struct {
	ID          int64
	Title       string
	Description string
	EventID     sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GalleryImage is exclusively owned by its gallery; deleting the gallery
// cascades to its images at the database level.
type GalleryImage struct {
	ID        int64
	GalleryID int64
	Url       string
	PublicID  string
	Alt       string
	Position  int64
	CreatedAt time.Time
}

// Contact is a submitted contact-form message.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	IsRead    int64
	CreatedAt time.Time
}

// Page is an informational page addressed by slug.
type Page struct {
	ID        int64
	Slug      string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Testimonial is a pilgrim's published review.
type Testimonial struct {
	ID          int64
	Author      string
	Location    string
	Text        string
	Rating      sql.NullInt64
	IsPublished int64
	CreatedAt   time.Time
}

// AuditEntry is a WARN-or-above log record mirrored into the database.
type AuditEntry struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
