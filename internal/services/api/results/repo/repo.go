// Package repo provides flat-file access for saved result sets
package repo

import (
	"context"
	"encoding/json"

	"skylens/internal/modkit/repokit"
)

// latestName is the fixed scratch document the pipeline overwrites each run
const latestName = "latest.json"

// Repo is the minimal persistence surface for result sets
type Repo interface {
	WriteResult(ctx context.Context, name string, doc any) error
	ReadResult(ctx context.Context, name string) (json.RawMessage, error)
	ListResults(ctx context.Context) ([]string, error)
	WriteLatest(ctx context.Context, doc any) error
	ReadLatest(ctx context.Context) (json.RawMessage, error)
}

type (
	// FS is a binder that binds the repo to a store handle
	FS struct{}
	// files implements the Repo interface
	files struct{ fs repokit.FS }
)

// NewFS returns a binder for the filesystem store
func NewFS() repokit.Binder[Repo] { return FS{} }

// Bind wires a store handle to the repo
func (FS) Bind(fs repokit.FS) Repo { return &files{fs: fs} }

func (r *files) WriteResult(_ context.Context, name string, doc any) error {
	return repokit.Results(r.fs).WriteJSON(name, doc)
}

func (r *files) ReadResult(_ context.Context, name string) (json.RawMessage, error) {
	return repokit.Results(r.fs).ReadRaw(name)
}

func (r *files) ListResults(_ context.Context) ([]string, error) {
	return repokit.Results(r.fs).List()
}

func (r *files) WriteLatest(_ context.Context, doc any) error {
	return repokit.Scratch(r.fs).WriteJSON(latestName, doc)
}

func (r *files) ReadLatest(_ context.Context) (json.RawMessage, error) {
	return repokit.Scratch(r.fs).ReadRaw(latestName)
}
