// Package module wires the analysis pipeline into the API using modkit
package module

import (
	"net/http"

	"skylens/internal/adapters/bluesky"
	"skylens/internal/core/textstats"
	modkit "skylens/internal/modkit"
	"skylens/internal/modkit/httpkit"
	str "skylens/internal/platform/strings"
	analysishttp "skylens/internal/services/api/analysis/http"
	analysissvc "skylens/internal/services/api/analysis/service"
)

// Ports injects the pipeline collaborators. Scratch is required (the results
// module owns it); Platform defaults to a real client from config
type Ports struct {
	Platform analysissvc.Platform
	Scratch  analysissvc.Scratch
}

// Module implements the analysis module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc analysissvc.Service
}

// New constructs the analysis module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analysis")}, opts...)...)

	p, _ := b.Ports.(Ports)
	if p.Scratch == nil {
		panic("analysis module requires a Scratch port from the results module")
	}
	if p.Platform == nil {
		p.Platform = bluesky.New(bluesky.FromConfig(deps.Cfg.Prefix("BLUESKY_")))
	}

	svc := analysissvc.New(
		p.Platform,
		p.Scratch,
		textstats.New(),
		analysissvc.CredentialsFromConfig(deps.Cfg.Prefix("BLUESKY_")),
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptRunPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		analysishttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MayPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
