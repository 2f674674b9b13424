// Package http provides http transport for nantes events
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strconv"

	"homeboard/internal/modkit/httpkit"
	perr "homeboard/internal/platform/errors"
	"homeboard/internal/services/api/nantes/domain"
	svc "homeboard/internal/services/api/nantes/service"
)

// Register mounts nantes endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.events)
	httpkit.Get(r, "/categories", h.categories)
}

type handlers struct{ svc svc.Service }

// @Summary Upcoming Nantes events
// @Tags Nantes
// @Produce json
// @Param dateMax query string false "latest day to include (ISO)"
// @Param categories query string false "JSON array of categories"
// @Param limit query int false "page size"
// @Success 200 {object} domain.EventsPage "ok"
// @Router /nantes-events [get]
func (h *handlers) events(r *stdhttp.Request) (any, error) {
	query := r.URL.Query()
	q := domain.EventsQuery{DateMax: query.Get("dateMax")}
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "limit must be an integer")
		}
		q.Limit = n
	}
	if raw, ok := query["categories"]; ok && len(raw) > 0 {
		q.HasCatList = true
		q.Categories = []string{}
		if raw[0] != "" {
			if err := json.Unmarshal([]byte(raw[0]), &q.Categories); err != nil {
				return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "categories must be a JSON array")
			}
		}
	}
	page, err := h.svc.Events(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// @Summary Distinct event categories
// @Tags Nantes
// @Produce json
// @Success 200 {object} map[string][]string "ok"
// @Router /nantes-events/categories [get]
func (h *handlers) categories(r *stdhttp.Request) (any, error) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return map[string]any{"categories": cats}, nil
}
