// Package http provides http transport for saved result sets
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"skylens/internal/modkit/httpkit"
	"skylens/internal/services/api/results/domain"
	svc "skylens/internal/services/api/results/service"
)

// Register mounts result endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SaveInput](r, "/save_result", h.save)
	httpkit.Get(r, "/saved_list", h.list)
	httpkit.Get(r, "/saved/{name}", h.get)
	httpkit.PostJSON[domain.BatchInput](r, "/saved_batch", h.batch)
	httpkit.Get(r, "/latest", h.latest)
}

type handlers struct{ svc svc.Service }

// @Summary Save a result set
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body domain.SaveInput true "Result set"
// @Success 200 {object} domain.SaveOutput "ok"
// @Router /save_result [post]
func (h *handlers) save(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	return h.svc.Save(r.Context(), in)
}

// @Summary List saved result names, most recent first
// @Tags Results
// @Produce json
// @Success 200 {array} string "ok"
// @Router /saved_list [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	names, err := h.svc.List(r.Context())
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// @Summary Load one saved result set
// @Tags Results
// @Produce json
// @Param name path string true "File name"
// @Success 200 {array} object "ok"
// @Router /saved/{name} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "name"))
}

// @Summary Load several saved result sets in order
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "File names"
// @Success 200 {array} object "ok"
// @Router /saved_batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.Batch(r.Context(), in.Filenames)
}

// @Summary Result set of the most recent analysis run
// @Tags Results
// @Produce json
// @Success 200 {array} object "ok"
// @Router /latest [get]
func (h *handlers) latest(r *stdhttp.Request) (any, error) {
	return h.svc.Latest(r.Context())
}
