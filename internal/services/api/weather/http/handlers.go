// Package http provides http transport for the weather forecast
package http

import (
	stdhttp "net/http"

	"homeboard/internal/modkit/httpkit"
	svc "homeboard/internal/services/api/weather/service"
)

// Register mounts weather endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.report)
}

type handlers struct{ svc svc.Service }

// @Summary Current conditions and six-day forecast
// @Tags Weather
// @Produce json
// @Success 200 {object} domain.Report "ok"
// @Router /weather [get]
func (h *handlers) report(r *stdhttp.Request) (any, error) {
	return h.svc.Report(r.Context())
}
