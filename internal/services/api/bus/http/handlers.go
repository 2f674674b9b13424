// Package http provides http transport for bus departures
package http

import (
	stdhttp "net/http"

	"homeboard/internal/modkit/httpkit"
	svc "homeboard/internal/services/api/bus/service"
)

// Register mounts bus endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.board)
}

type handlers struct{ svc svc.Service }

// @Summary Waiting-time board for the configured stop
// @Tags Bus
// @Produce json
// @Success 200 {object} domain.StopBoard "ok"
// @Router /bus [get]
func (h *handlers) board(r *stdhttp.Request) (any, error) {
	return h.svc.Board(r.Context())
}
