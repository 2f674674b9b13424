package module

import (
	"context"

	"homeboard/internal/services/api/bus/domain"
	bussvc "homeboard/internal/services/api/bus/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc bussvc.Service }

// Board returns the cached waiting-time board
func (a adaptPort) Board(ctx context.Context) (domain.StopBoard, error) {
	return a.svc.Board(ctx)
}
