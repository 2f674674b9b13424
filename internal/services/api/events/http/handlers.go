// Package http provides http transport for the merged event feed
package http

import (
	stdhttp "net/http"

	"homeboard/internal/modkit/httpkit"
	svc "homeboard/internal/services/api/events/service"
)

// Register mounts the merged event feed on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.events)
}

type handlers struct{ svc svc.Service }

// @Summary Calendar and venue events, merged
// @Tags Events
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /events [get]
func (h *handlers) events(r *stdhttp.Request) (any, error) {
	evs, err := h.svc.Events(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]any{"events": evs}, nil
}
