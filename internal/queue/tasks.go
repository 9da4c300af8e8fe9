// Package queue runs batch scans as independent background tasks. Each
// task carries one document's text; no state is shared across tasks, so
// batch items complete in any order.
package queue

// Task type constants
const (
	TypeProcessScan = "scanreport:process_scan"
)

// ProcessScanPayload is the payload for a single background scan.
type ProcessScanPayload struct {
	ScanID string `json:"scan_id"`
	Text   string `json:"text"`
	Title  string `json:"title,omitempty"`
	// Tracing and timing fields
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	EnqueuedAt int64  `json:"enqueued_at"` // Unix timestamp in nanoseconds
}
