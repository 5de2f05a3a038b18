// Package http provides http transport for the analysis pipeline
package http

import (
	stdhttp "net/http"
	"strings"
	"time"

	"skylens/internal/modkit/httpkit"
	perr "skylens/internal/platform/errors"
	"skylens/internal/services/api/analysis/domain"
	svc "skylens/internal/services/api/analysis/service"
)

// Register mounts the analysis endpoint on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// form-encoded to match the original UI submission
	httpkit.Post(r, "/analyze", h.analyze)
}

type handlers struct{ svc svc.Service }

// @Summary Run a search and sentiment analysis pass
// @Tags Analysis
// @Accept x-www-form-urlencoded
// @Produce json
// @Param query formData string true "Search term"
// @Param start_date formData string false "Inclusive ISO date"
// @Param end_date formData string false "Inclusive ISO date"
// @Success 200 {object} domain.AnalyzeReport "ok"
// @Router /analyze [post]
func (h *handlers) analyze(r *stdhttp.Request) (any, error) {
	in, err := parseAnalyzeForm(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Run(r.Context(), in)
}

func parseAnalyzeForm(r *stdhttp.Request) (domain.AnalyzeInput, error) {
	if err := r.ParseForm(); err != nil {
		return domain.AnalyzeInput{}, perr.Validationf("malformed form body")
	}

	in := domain.AnalyzeInput{
		Query: strings.TrimSpace(r.PostForm.Get("query")),
	}

	var err error
	if s := strings.TrimSpace(r.PostForm.Get("start_date")); s != "" {
		if in.Start, err = parseDate(s, false); err != nil {
			return domain.AnalyzeInput{}, perr.Validationf("invalid start_date %q", s)
		}
	}
	if s := strings.TrimSpace(r.PostForm.Get("end_date")); s != "" {
		if in.End, err = parseDate(s, true); err != nil {
			return domain.AnalyzeInput{}, perr.Validationf("invalid end_date %q", s)
		}
	}
	return in, nil
}

// parseDate accepts a plain ISO date or a full RFC3339 timestamp. Bare end
// dates are inclusive, so they stretch to the last instant of that day
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, time.UTC), nil
		}
		return d.UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
