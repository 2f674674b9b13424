package domain

import "context"

// ServicePort exposes bus reads to transports and sibling modules
type ServicePort interface {
	// Board returns the cached waiting-time board for the configured stop
	Board(ctx context.Context) (StopBoard, error)
}
