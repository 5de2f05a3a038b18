// @title         Skylens API
// @version       1.0.0
// @description   Bluesky search, sentiment analysis and action endpoints

package main

import (
	"context"

	"skylens/internal/modkit/repokit"
	"skylens/internal/platform/config"
	"skylens/internal/platform/logger"
	phttp "skylens/internal/platform/net/http"
	"skylens/internal/platform/store"

	"skylens/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (SKYLENS_API_*)
	root := config.New()
	apiCfg := root.Prefix("SKYLENS_API_")
	resCfg := root.Prefix("RESULTS_")

	// bring up logging early
	l := logger.Get()

	// open the flat-file result store
	st, err := store.Open(
		store.Config{
			ResultsDir: resCfg.MayString("DIR", "saved_results"),
			ScratchDir: resCfg.MayString("SCRATCH", "scratch"),
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(context.Background(), st)

	// http server (reads SKYLENS_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
