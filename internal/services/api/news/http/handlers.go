// Package http provides http transport for news
package http

import (
	stdhttp "net/http"

	"homeboard/internal/modkit/httpkit"
	svc "homeboard/internal/services/api/news/service"
)

// Register mounts news endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.headlines)
}

type handlers struct{ svc svc.Service }

// @Summary News headlines
// @Tags News
// @Produce json
// @Param type query string false "headline category"
// @Success 200 {object} domain.Feed "ok"
// @Router /news [get]
func (h *handlers) headlines(r *stdhttp.Request) (any, error) {
	feed, err := h.svc.Headlines(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": feed}, nil
}
