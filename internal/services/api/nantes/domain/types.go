// Package domain holds Nantes open-data event types
package domain

import "homeboard/internal/core/event"

// EventsQuery filters the event listing.
// Categories keeps the tri-state query semantics: nil means no filter,
// an empty slice means no categories and therefore zero events.
type EventsQuery struct {
	DateMax    string   // ISO day bound, optional
	Categories []string // nil = all, [] = none, non-empty = containment filter
	HasCatList bool     // true when the categories parameter was present
	Limit      int
}

// EventsPage is the payload of GET /api/nantes-events
type EventsPage struct {
	Events  []event.Normalized `json:"events"`
	HasMore bool               `json:"hasMore"`
}
