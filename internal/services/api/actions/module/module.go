// Package module wires platform actions into the API using modkit
package module

import (
	"net/http"

	"skylens/internal/adapters/bluesky"
	modkit "skylens/internal/modkit"
	"skylens/internal/modkit/httpkit"
	str "skylens/internal/platform/strings"
	actionshttp "skylens/internal/services/api/actions/http"
	actionssvc "skylens/internal/services/api/actions/service"
)

// Ports injects the gateway, mostly for tests; defaults to a real client
type Ports struct {
	Gateway actionssvc.Gateway
}

// Module implements the actions module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc actionssvc.Service
}

// New constructs the actions module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("actions")}, opts...)...)

	p, _ := b.Ports.(Ports)
	if p.Gateway == nil {
		p.Gateway = bluesky.New(bluesky.FromConfig(deps.Cfg.Prefix("BLUESKY_")))
	}

	bcfg := deps.Cfg.Prefix("BLUESKY_")
	svc := actionssvc.New(p.Gateway, actionssvc.Credentials{
		Identifier:  bcfg.MayString("IDENTIFIER", ""),
		AppPassword: bcfg.MayString("APP_PASSWORD", ""),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = nil

	external := b.Register
	m.register = func(r httpkit.Router) {
		actionshttp.Register(r, m.svc)
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
