// Package service contains saved result workflows
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skylens/internal/modkit/repokit"
	perr "skylens/internal/platform/errors"
	"skylens/internal/services/api/results/domain"
	"skylens/internal/services/api/results/repo"
)

// Service defines the results service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the results service
type Svc struct {
	Repo repo.Repo

	// seams for deterministic names in tests
	now   func() time.Time
	newID func() string
}

// New constructs a results service bound to the given store
func New(fs repokit.FS, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("results.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:  repokit.MustBind(binder, fs),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Save stores one result set under a generated collision-resistant name
func (s *Svc) Save(ctx context.Context, in domain.SaveInput) (domain.SaveOutput, error) {
	if len(in.Results) == 0 {
		return domain.SaveOutput{}, perr.Validationf("no results to save")
	}
	name := s.filename(in.Query)
	if err := s.Repo.WriteResult(ctx, name, in.Results); err != nil {
		return domain.SaveOutput{}, err
	}
	return domain.SaveOutput{Filename: name}, nil
}

// filename builds YYYY-MM-DD-HHMMSS-<query>-<8 hex>.json. The uuid suffix
// keeps saves within the same second from clobbering each other
func (s *Svc) filename(query string) string {
	ts := s.now().UTC().Format("2006-01-02-150405")
	suffix := strings.ReplaceAll(s.newID(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s.json", ts, sanitizeQuery(query), suffix)
}

// sanitizeQuery keeps names portable across filesystems
func sanitizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return "search"
	}
	var b strings.Builder
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "search"
	}
	if len(out) > 40 {
		out = out[:40]
	}
	return out
}

// List returns saved names most recent first
func (s *Svc) List(ctx context.Context) ([]string, error) {
	return s.Repo.ListResults(ctx)
}

// Get returns one stored result set
func (s *Svc) Get(ctx context.Context, name string) (domain.ResultSet, error) {
	return s.Repo.ReadResult(ctx, name)
}

// Batch returns the named sets in request order; any missing name fails the
// whole request
func (s *Svc) Batch(ctx context.Context, names []string) ([]domain.ResultSet, error) {
	out := make([]domain.ResultSet, 0, len(names))
	for _, name := range names {
		doc, err := s.Repo.ReadResult(ctx, name)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotFound) {
				return nil, perr.NotFoundf("no such result %q", name)
			}
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// Latest returns the scratch result set of the most recent pipeline run
func (s *Svc) Latest(ctx context.Context) (domain.ResultSet, error) {
	return s.Repo.ReadLatest(ctx)
}

// PutLatest overwrites the scratch result set, last write wins
func (s *Svc) PutLatest(ctx context.Context, doc any) error {
	return s.Repo.WriteLatest(ctx, doc)
}
