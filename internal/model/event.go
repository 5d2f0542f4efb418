// Package model holds domain constants and content helpers shared by the
// handlers and the logging layer.
package model

// Event status values.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// DefaultCurrency is used when an event is created without one.
const DefaultCurrency = "UAH"

// ValidEventStatus reports whether s is a known event status.
func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// ValidCurrency reports whether s is an accepted currency code.
func ValidCurrency(s string) bool {
	switch s {
	case "UAH", "USD", "EUR":
		return true
	}
	return false
}

// Testimonial ratings are a 1..5 star scale.
const (
	MinRating = 1
	MaxRating = 5
)
