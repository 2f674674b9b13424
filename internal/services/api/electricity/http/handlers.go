// Package http provides http transport for electricity
package http

import (
	stdhttp "net/http"
	"strconv"

	"homeboard/internal/modkit/httpkit"
	svc "homeboard/internal/services/api/electricity/service"
)

// Register mounts electricity endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.widget)
}

type handlers struct{ svc svc.Service }

// @Summary Electricity widget data
// @Tags Electricity
// @Produce json
// @Param dailyChartDays query int false "daily chart window in days"
// @Success 200 {object} domain.WidgetData "ok"
// @Router /electricity [get]
func (h *handlers) widget(r *stdhttp.Request) (any, error) {
	days, _ := strconv.Atoi(r.URL.Query().Get("dailyChartDays"))
	data, err := h.svc.WidgetData(r.Context(), days)
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": data}, nil
}
