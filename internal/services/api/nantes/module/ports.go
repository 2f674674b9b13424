package module

import (
	"context"

	"homeboard/internal/services/api/nantes/domain"
	nantessvc "homeboard/internal/services/api/nantes/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc nantessvc.Service }

// Events returns the filtered event page
func (a adaptPort) Events(ctx context.Context, q domain.EventsQuery) (domain.EventsPage, error) {
	return a.svc.Events(ctx, q)
}

// Categories returns the distinct category list
func (a adaptPort) Categories(ctx context.Context) ([]string, error) {
	return a.svc.Categories(ctx)
}
