package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Headlines(ctx context.Context, category string) (Feed, error)
}
