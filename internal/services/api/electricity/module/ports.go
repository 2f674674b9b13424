package module

import (
	"context"

	"homeboard/internal/services/api/electricity/domain"
	elecsvc "homeboard/internal/services/api/electricity/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc elecsvc.Service }

// WidgetData returns the aggregated consumption view
func (a adaptPort) WidgetData(ctx context.Context, days int) (domain.WidgetData, error) {
	return a.svc.WidgetData(ctx, days)
}
