package domain

import "context"

// ServicePort exposes weather reads to transports and sibling modules
type ServicePort interface {
	// Report returns the cached forecast for the configured coordinates
	Report(ctx context.Context) (Report, error)
}
