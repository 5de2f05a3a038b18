package module

import (
	"context"

	"skylens/internal/services/api/analysis/domain"
	analysissvc "skylens/internal/services/api/analysis/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptRunPort struct{ svc analysissvc.Service }

// Run executes one pipeline pass
func (a adaptRunPort) Run(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeReport, error) {
	return a.svc.Run(ctx, in)
}
