// Package api provides the HTTP API for the dashboard
package api

import (
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	phttp "homeboard/internal/platform/net/http"

	"homeboard/internal/modkit"
	"homeboard/internal/modkit/httpkit"
	"homeboard/internal/modkit/module"
	"homeboard/internal/modkit/swaggerkit"

	busmod "homeboard/internal/services/api/bus/module"
	elecmod "homeboard/internal/services/api/electricity/module"
	eventsmod "homeboard/internal/services/api/events/module"
	huemod "homeboard/internal/services/api/hue/module"
	metamod "homeboard/internal/services/api/meta/module"
	nantesmod "homeboard/internal/services/api/nantes/module"
	newsmod "homeboard/internal/services/api/news/module"
	spotifymod "homeboard/internal/services/api/spotify/module"
	weathermod "homeboard/internal/services/api/weather/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router.
// Every integration lives under a flat /api prefix, the shape the
// dashboard client was written against.
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps),
		eventsmod.New(deps),
		nantesmod.New(deps),
		elecmod.New(deps),
		weathermod.New(deps),
		newsmod.New(deps),
		busmod.New(deps),
		huemod.New(deps),
		spotifymod.New(deps),
	}

	httpkit.MountAPIRoot(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		phttp.MountMetrics(r, "/metrics", opt.EnableMetrics)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
