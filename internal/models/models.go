package models

import "time"

// ScanRecord is a completed scan as stored locally: the raw document plus
// the generated plain-text summary and a few scalar columns for listing.
type ScanRecord struct {
	ID              string         `json:"id"`
	RemoteID        string         `json:"remote_id,omitempty"`
	Title           string         `json:"title,omitempty"`
	Document        map[string]any `json:"document"`
	Summary         string         `json:"summary"`
	AIProbability   float64        `json:"ai_probability"`
	PlagiarismScore float64        `json:"plagiarism_score"`
	Failed          bool           `json:"failed"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
