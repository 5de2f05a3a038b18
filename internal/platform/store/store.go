// Package store provides the filesystem-backed result store.
// Saved result sets are plain JSON files under a root directory; there is no
// database behind this service. Writes are atomic (temp file + rename) so a
// reader never observes a half-written result set
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	perr "skylens/internal/platform/errors"
	"skylens/internal/platform/logger"
)

// Config selects the directories the store manages
type Config struct {
	// ResultsDir holds named, caller-saved result sets
	ResultsDir string
	// ScratchDir holds the fixed output of the latest pipeline run
	ScratchDir string
}

// Option mutates the store during Open
type Option func(*Store)

// WithLogger overrides the default component logger
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store bundles the managed directories
type Store struct {
	Results *Dir
	Scratch *Dir
	log     logger.Logger
}

// Open validates config, creates missing directories and returns the store
func Open(cfg Config, opts ...Option) (*Store, error) {
	if strings.TrimSpace(cfg.ResultsDir) == "" {
		return nil, perr.Storagef("results dir is required")
	}
	if strings.TrimSpace(cfg.ScratchDir) == "" {
		return nil, perr.Storagef("scratch dir is required")
	}

	s := &Store{log: *logger.Named("store")}
	for _, o := range opts {
		o(s)
	}

	for _, dir := range []string{cfg.ResultsDir, cfg.ScratchDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "create dir %s", dir)
		}
	}
	s.Results = &Dir{root: cfg.ResultsDir, log: s.log}
	s.Scratch = &Dir{root: cfg.ScratchDir, log: s.log}

	s.log.Debug().Str("results", cfg.ResultsDir).Str("scratch", cfg.ScratchDir).Msg("store open")
	return s, nil
}

// Guard verifies the managed directories are still present and usable.
// Called at startup so a misconfigured volume fails fast instead of on the
// first save
func (s *Store) Guard(ctx context.Context) error {
	for _, d := range []*Dir{s.Results, s.Scratch} {
		if err := ctx.Err(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeStorage, "guard cancelled")
		}
		fi, err := os.Stat(d.root)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeStorage, "stat %s", d.root)
		}
		if !fi.IsDir() {
			return perr.Storagef("%s is not a directory", d.root)
		}
	}
	return nil
}

// Dir is a single managed directory of JSON documents addressed by file name
type Dir struct {
	root string
	log  logger.Logger
}

// Root returns the directory path
func (d *Dir) Root() string { return d.root }

// cleanName rejects anything that could escape the directory
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "", perr.NotFoundf("no such result %q", name)
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", perr.NotFoundf("no such result %q", name)
	}
	return name, nil
}

// WriteJSON marshals v and atomically replaces name within the directory
func (d *Dir) WriteJSON(name string, v any) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "encode %s", name)
	}
	return d.writeRaw(name, b)
}

func (d *Dir) writeRaw(name string, b []byte) error {
	tmp, err := os.CreateTemp(d.root, "."+name+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "temp file for %s", name)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeStorage, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeStorage, "close %s", name)
	}
	if err := os.Rename(tmpName, filepath.Join(d.root, name)); err != nil {
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeStorage, "rename %s", name)
	}
	return nil
}

// ReadRaw returns the raw bytes of name, NotFound when absent
func (d *Dir) ReadRaw(name string) ([]byte, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.NotFoundf("no such result %q", name)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "read %s", name)
	}
	return b, nil
}

// ReadJSON unmarshals name into dst, NotFound when absent
func (d *Dir) ReadJSON(name string, dst any) error {
	b, err := d.ReadRaw(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "decode %s", name)
	}
	return nil
}

// Exists reports whether name is present
func (d *Dir) Exists(name string) bool {
	name, err := cleanName(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(d.root, name))
	return err == nil
}

// List returns the .json file names in the directory, newest first by name.
// Result names start with a zero-padded UTC timestamp so lexical descending
// order is chronological descending order
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "list %s", d.root)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}
