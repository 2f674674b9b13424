package module

import (
	spotifysvc "homeboard/internal/services/api/spotify/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptPort exposes the full proxy surface to sibling modules
type adaptPort struct{ spotifysvc.Service }
