package module

import (
	"skylens/internal/services/api/results/domain"
)

// Ports exposes the results store surface for cross module wiring.
// The analysis pipeline writes its scratch output through this port
type Ports struct {
	Store domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
