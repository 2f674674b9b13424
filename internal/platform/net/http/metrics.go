package http

import (
	stdhttp "net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountMetrics exposes the prometheus registry at path. Example: "/metrics"
func MountMetrics(r Router, path string, enabled bool) {
	if !enabled {
		return
	}
	h := promhttp.Handler()
	r.Get(path, func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		h.ServeHTTP(w, req)
	})
}
