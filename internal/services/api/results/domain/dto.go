// Package domain holds DTOs for saved result sets
package domain

import "encoding/json"

// SaveInput is the save_result payload. Results passes through untyped so a
// saved set round-trips byte-for-byte regardless of analyzer version
type SaveInput struct {
	Query   string `json:"query" example:"coffee"`
	Results []any  `json:"results"`
}

// SaveOutput returns the generated file name
type SaveOutput struct {
	Filename string `json:"filename" example:"2026-03-01-104500-coffee-1a2b3c4d.json"`
}

// BatchInput names the result sets to load together
type BatchInput struct {
	Filenames []string `json:"filenames" validate:"required,min=1"`
}

// ResultSet is one stored document, returned raw
type ResultSet = json.RawMessage
