package module

import (
	"context"

	"homeboard/internal/services/api/news/domain"
	newssvc "homeboard/internal/services/api/news/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc newssvc.Service }

// Headlines returns the cached headline feed for a category
func (a adaptPort) Headlines(ctx context.Context, category string) (domain.Feed, error) {
	return a.svc.Headlines(ctx, category)
}
