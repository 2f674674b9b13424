// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "homeboard/internal/modkit"
	"homeboard/internal/modkit/httpkit"
	str "homeboard/internal/platform/strings"

	metahttp "homeboard/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName:  "homeboard",
			StartedAt:    m.startedAt,
			Integrations: integrations(deps),
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// integrations reports which upstreams have their key settings present
func integrations(deps modkit.Deps) []metahttp.Integration {
	set := func(key string) bool { return deps.Cfg.MayString(key, "") != "" }
	return []metahttp.Integration{
		{Name: "hue", Configured: set("HUE_BRIDGE_URL")},
		{Name: "electricity", Configured: set("ELEC_API_TOKEN")},
		{Name: "news", Configured: true}, // RSS fallback needs no key
		{Name: "nantes", Configured: true},
		{Name: "bus", Configured: set("BUS_STOP_ID")},
		{Name: "weather", Configured: true},
		{Name: "calendar", Configured: set("CAL_ICS_URL")},
		{Name: "pullrouge", Configured: set("PULLROUGE_URL")},
		{Name: "spotify", Configured: set("SPOTIFY_CLIENT_ID")},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
