package module

import (
	"context"

	"homeboard/internal/services/api/weather/domain"
	weathersvc "homeboard/internal/services/api/weather/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc weathersvc.Service }

// Report returns the cached forecast
func (a adaptPort) Report(ctx context.Context) (domain.Report, error) {
	return a.svc.Report(ctx)
}
