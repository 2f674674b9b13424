package module

import (
	"context"

	"homeboard/internal/core/event"
	eventssvc "homeboard/internal/services/api/events/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc eventssvc.Service }

// Events returns the merged event stream
func (a adaptPort) Events(ctx context.Context) ([]event.Normalized, error) {
	return a.svc.Events(ctx)
}
