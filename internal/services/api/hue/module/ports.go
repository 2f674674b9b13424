package module

import (
	"context"

	"homeboard/internal/services/api/hue/domain"
	huesvc "homeboard/internal/services/api/hue/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc huesvc.Service }

// RoomStatus returns the aggregate room state
func (a adaptPort) RoomStatus(ctx context.Context, room string) (domain.RoomView, error) {
	return a.svc.RoomStatus(ctx, room)
}
