// Package domain holds the merged-calendar contract
package domain

import (
	"context"

	"homeboard/internal/core/event"
)

// ServicePort exposes the merged event feed to transports and sibling modules
type ServicePort interface {
	// Events returns calendar and venue events, day-expanded and sorted
	Events(ctx context.Context) ([]event.Normalized, error)
}
