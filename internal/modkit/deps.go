// Package modkit provides module wiring and core deps
package modkit

import (
	"skylens/internal/modkit/repokit"
	"skylens/internal/platform/config"
	"skylens/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// FS is the flat-file result store handle; repos bind against it
	FS repokit.FS
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the store handle
func (d Deps) ZeroOK() bool { return true }
