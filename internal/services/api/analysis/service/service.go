// Package service contains the search, analyze and store pipeline
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skylens/internal/adapters/bluesky"
	"skylens/internal/adapters/bluesky/enrich"
	"skylens/internal/core/textstats"
	"skylens/internal/platform/config"
	perr "skylens/internal/platform/errors"
	"skylens/internal/platform/logger"
	"skylens/internal/services/api/analysis/domain"
)

// defaultLimit mirrors the platform's searchPosts page cap
const defaultLimit = 100

// Platform is the slice of the Bluesky client the pipeline needs
type Platform interface {
	CreateSession(ctx context.Context, identifier, password string) (bluesky.Session, error)
	SearchPosts(ctx context.Context, sess bluesky.Session, q bluesky.SearchQuery) ([]bluesky.PostView, error)
}

// Scratch receives the survivors of each run
type Scratch interface {
	PutLatest(ctx context.Context, doc any) error
}

// Credentials are the app-password login pair, passed through as-is
type Credentials struct {
	Identifier  string
	AppPassword string
}

// CredentialsFromConfig reads the login pair from a BLUESKY_ scoped view.
// Missing values surface as an auth error on the first run, not at boot
func CredentialsFromConfig(cfg config.Conf) Credentials {
	return Credentials{
		Identifier:  cfg.MayString("IDENTIFIER", ""),
		AppPassword: cfg.MayString("APP_PASSWORD", ""),
	}
}

// Service defines the analysis service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analysis pipeline
type Svc struct {
	platform Platform
	scratch  Scratch
	analyzer *textstats.Analyzer
	creds    Credentials
	log      logger.Logger
}

// New constructs the pipeline service
func New(platform Platform, scratch Scratch, analyzer *textstats.Analyzer, creds Credentials) *Svc {
	if platform == nil {
		panic("analysis.Service requires a non nil Platform")
	}
	if scratch == nil {
		panic("analysis.Service requires a non nil Scratch")
	}
	if analyzer == nil {
		analyzer = textstats.New()
	}
	return &Svc{
		platform: platform,
		scratch:  scratch,
		analyzer: analyzer,
		creds:    creds,
		log:      *logger.Named("analysis"),
	}
}

// Run executes one pipeline pass: validate, authenticate, search, enrich,
// store. Per-post failures are counted and skipped; auth and fetch failures
// abort the run before anything is written
func (s *Svc) Run(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeReport, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return domain.AnalyzeReport{}, perr.Validationf("search term is required")
	}

	start, end := s.window(in.Start, in.End)
	if start.After(end) {
		return domain.AnalyzeReport{}, perr.Validationf("start date must be before end date")
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > defaultLimit {
		return domain.AnalyzeReport{}, perr.Validationf("limit must be between 1 and %d", defaultLimit)
	}

	if s.creds.Identifier == "" || s.creds.AppPassword == "" {
		return domain.AnalyzeReport{}, perr.Authf("bluesky credentials are not configured")
	}

	sess, err := s.platform.CreateSession(ctx, s.creds.Identifier, s.creds.AppPassword)
	if err != nil {
		return domain.AnalyzeReport{}, err
	}

	posts, err := s.platform.SearchPosts(ctx, sess, bluesky.SearchQuery{
		Q:     query,
		Since: start,
		Until: end,
		Limit: limit,
	})
	if err != nil {
		return domain.AnalyzeReport{}, err
	}

	analyzed := make([]enrich.Post, 0, len(posts))
	skipped := 0
	for _, pv := range posts {
		p, err := enrich.FromPostView(pv, s.analyzer)
		if err != nil {
			skipped++
			reason, _ := enrich.IsSkip(err)
			s.log.Warn().
				Str("uri", pv.URI).
				Str("reason", reason).
				Err(err).
				Msg("post skipped")
			continue
		}
		analyzed = append(analyzed, p)
	}

	if err := s.scratch.PutLatest(ctx, analyzed); err != nil {
		return domain.AnalyzeReport{}, err
	}

	s.log.Info().
		Str("query", query).
		Int("count", len(analyzed)).
		Int("skipped", skipped).
		Msg("analysis run complete")

	return domain.AnalyzeReport{
		Message: fmt.Sprintf("Analyzed %d posts.", len(analyzed)),
		Count:   len(analyzed),
		Skipped: skipped,
	}, nil
}

// window fills default bounds: a 1000 day trailing window ending today
func (s *Svc) window(start, end time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	if start.IsZero() {
		d := now.AddDate(0, 0, -1000)
		start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	if end.IsZero() {
		end = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999_000_000, time.UTC)
	}
	return start, end
}
