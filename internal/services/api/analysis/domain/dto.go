// Package domain holds DTOs for the analysis pipeline
package domain

import "time"

// AnalyzeInput bounds one pipeline run. Zero Start/End fall back to the
// service defaults (a wide trailing window ending now)
type AnalyzeInput struct {
	Query string
	Start time.Time
	End   time.Time
	Limit int
}

// AnalyzeReport summarizes a finished run. Skipped counts posts dropped by
// per-post failures; they never abort the batch
type AnalyzeReport struct {
	Message string `json:"message" example:"Analyzed 42 posts."`
	Count   int    `json:"count" example:"42"`
	Skipped int    `json:"skipped" example:"3"`
}
