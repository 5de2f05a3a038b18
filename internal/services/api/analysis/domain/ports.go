package domain

import "context"

// ServicePort is consumed by handlers and the one-shot CLI
type ServicePort interface {
	Run(ctx context.Context, in AnalyzeInput) (AnalyzeReport, error)
}
