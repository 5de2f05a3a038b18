// Package module wires saved results into the API using modkit
package module

import (
	"net/http"

	modkit "skylens/internal/modkit"
	"skylens/internal/modkit/httpkit"
	str "skylens/internal/platform/strings"
	resultshttp "skylens/internal/services/api/results/http"
	resultsrepo "skylens/internal/services/api/results/repo"
	resultssvc "skylens/internal/services/api/results/service"
)

// Module implements the results module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc resultssvc.Service
}

// New constructs the results module. The original UI calls these paths at the
// router root, so the default prefix is empty
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("results")}, opts...)...)

	repo := resultsrepo.NewFS()
	svc := resultssvc.New(deps.FS, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Store: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		resultshttp.Register(r, m.svc)
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
