// Package scanner drives a full scan: it submits text to the remote
// service, then derives every secondary view and both report renderings
// from the single immutable document that comes back.
package scanner

import (
	"context"

	"github.com/zombar/scanreport/internal/derive"
	"github.com/zombar/scanreport/internal/document"
	"github.com/zombar/scanreport/internal/insights"
	"github.com/zombar/scanreport/internal/originality"
	"github.com/zombar/scanreport/internal/report"
)

// Collaborator is the slice of the remote-service client the scanner needs.
type Collaborator interface {
	NewScan(ctx context.Context, content string, opts originality.ScanOptions) document.Document
	GetScan(ctx context.Context, scanID string) document.Document
}

// Scanner orchestrates scan submission and result processing. It holds no
// cross-scan state; concurrent scans are independent.
type Scanner struct {
	client Collaborator
}

// New creates a scanner around a remote-service client.
func New(client Collaborator) *Scanner {
	return &Scanner{client: client}
}

// Result is the complete processed view of one scan document. Every field
// is derived from Document; the whole struct is a snapshot, not state.
type Result struct {
	Document   document.Document         `json:"document"`
	Complexity *derive.ComplexitySummary `json:"complexity,omitempty"`
	Blocks     []derive.BlockScore       `json:"blocks,omitempty"`
	Timeline   *derive.TimelineSeries    `json:"timeline,omitempty"`
	Heatmap    *derive.HeatmapMatrix     `json:"heatmap,omitempty"`
	Plagiarism []derive.PlagiarismMetric `json:"plagiarism,omitempty"`
	Insights   []string                  `json:"insights,omitempty"`
	Summary    string                    `json:"summary"`
	HTML       string                    `json:"-"`
}

// Scan submits text for analysis and processes whatever comes back. A
// transport failure surfaces as a Result whose document is error-only.
func (s *Scanner) Scan(ctx context.Context, text string, opts originality.ScanOptions) *Result {
	doc := s.client.NewScan(ctx, text, opts)
	return Process(doc)
}

// Fetch retrieves an existing scan by id and processes it.
func (s *Scanner) Fetch(ctx context.Context, scanID string) *Result {
	doc := s.client.GetScan(ctx, scanID)
	return Process(doc)
}

// Process derives all secondary metrics, insights and renderings from a
// document. It is pure: callers may use it on documents loaded from disk
// or the database without touching the network.
func Process(doc document.Document) *Result {
	insightLines := insights.Build(doc)
	return &Result{
		Document:   doc,
		Complexity: derive.Complexity(doc),
		Blocks:     derive.BlockScores(doc),
		Timeline:   derive.Timeline(doc),
		Heatmap:    derive.Heatmap(doc),
		Plagiarism: derive.PlagiarismMetrics(doc),
		Insights:   insightLines,
		Summary:    report.FormatText(doc),
		HTML:       report.FormatHTML(doc, report.Figures(doc), insightLines),
	}
}
