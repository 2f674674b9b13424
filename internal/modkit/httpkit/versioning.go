package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI mounts a subrouter under /api/{version}, applies any per-scope middleware,
// then invokes mount to register routes on that scoped router
// An empty version mounts the flat /api surface
//
// example:
//
//	httpkit.MountAPI(r, "", httpkit.CommonStack(), func(api httpkit.Router) {
//	  hue.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/api"
	if ver := strings.Trim(version, "/"); ver != "" {
		prefix += "/" + ver
	}
	// the stack goes on the root router so path-anchored middleware
	// (heartbeat /health) sees the unprefixed request path
	if len(mw) > 0 {
		r.Use(mw...)
	}
	r.Route(prefix, func(api Router) {
		mount(api)
	})
}

// MountAPIRoot mounts the unversioned /api surface the dashboard client expects
func MountAPIRoot(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "", mw, mount)
}
