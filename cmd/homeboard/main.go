// @title         Homeboard API
// @version       0.1.0
// @description   Aggregated home dashboard endpoints

package main

import (
	"context"

	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	phttp "homeboard/internal/platform/net/http"

	"homeboard/internal/services/api"
)

func main() {
	root := config.New()
	httpCfg := root.Prefix("HTTP_") // HTTP_PORT / HTTP_ADDR etc

	// bring up logging early
	l := logger.Get()

	srv := phttp.NewServer(httpCfg)

	// integration settings (HUE_*, ELEC_*, NANTES_* ...) read from the root
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  httpCfg.MayBool("SWAGGER", true),
			EnableProfiler: httpCfg.MayBool("PROFILER", false),
			EnableMetrics:  httpCfg.MayBool("METRICS", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
