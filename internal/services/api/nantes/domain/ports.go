package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Events(ctx context.Context, q EventsQuery) (EventsPage, error)
	Categories(ctx context.Context) ([]string, error)
}
