// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"skylens/internal/platform/store"
)

// FS is the flat-file store handle repos bind against
type FS = *store.Store

// Dir is a single result directory within the store
type Dir = *store.Dir

// Results exposes the saved-results directory of a store without repos
// importing the store package directly
func Results(fs FS) Dir { return fs.Results }

// Scratch exposes the scratch directory used for latest pipeline output
func Scratch(fs FS) Dir { return fs.Scratch }
