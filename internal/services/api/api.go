// Package api provides the HTTP API for the application
package api

import (
	"skylens/internal/platform/config"
	"skylens/internal/platform/logger"
	phttp "skylens/internal/platform/net/http"
	"skylens/internal/platform/store"

	modkit "skylens/internal/modkit"
	"skylens/internal/modkit/httpkit"
	"skylens/internal/modkit/module"
	"skylens/internal/modkit/swaggerkit"

	actionsmod "skylens/internal/services/api/actions/module"
	analysismod "skylens/internal/services/api/analysis/module"
	metamod "skylens/internal/services/api/meta/module"
	resultsmod "skylens/internal/services/api/results/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		FS:  opt.Store,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the results module first and extract its store port;
	// the analysis pipeline writes its scratch output through it
	results := resultsmod.New(deps)
	storePort := module.MustPortsOf[resultsmod.Ports](results).Store

	analysis := analysismod.New(
		deps,
		modkit.WithPorts(analysismod.Ports{
			Scratch: storePort,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		results,
		analysis,
		actionsmod.New(deps),
	}

	// flat paths at the router root with a common middleware stack
	httpkit.MountUnder(r, "", httpkit.CommonStack(), func(root httpkit.Router) {
		// Swagger + profiler stay outside the module group
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(root)
		}
	})
}
