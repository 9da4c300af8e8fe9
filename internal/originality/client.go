// Package originality is the HTTP client for the remote scanning service.
// It submits content for analysis and fetches stored scans. Transport and
// service failures are captured as error-only documents rather than Go
// errors, so downstream formatting always has something to render.
package originality

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zombar/scanreport/internal/document"
)

const (
	DefaultBaseURL = "https://api.originality.ai/api/v2"
	DefaultTimeout = 120 * time.Second

	// DefaultAIModel is the detection model requested for new scans.
	DefaultAIModel = "lite"

	apiKeyHeader = "X-OAI-API-KEY"
)

// Client talks to the scanning API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client for the scanning API. An empty baseURL selects the
// production endpoint.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// ScanOptions control what a new scan analyzes.
type ScanOptions struct {
	Title       string
	ExcludedURL string
	ScanAI      bool
	ScanPlag    bool
	AIModel     string
	StoreScan   bool
}

// DefaultScanOptions enables every check, matching the "all" scan type.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Title:     "Scan",
		ScanAI:    true,
		ScanPlag:  true,
		AIModel:   DefaultAIModel,
		StoreScan: true,
	}
}

// NewScan submits content for analysis and waits for the full result.
// Readability and grammar checks are always requested.
func (c *Client) NewScan(ctx context.Context, content string, opts ScanOptions) document.Document {
	if opts.AIModel == "" {
		opts.AIModel = DefaultAIModel
	}
	if opts.Title == "" {
		opts.Title = "Scan"
	}
	payload := map[string]any{
		"content":               content,
		"title":                 opts.Title,
		"excludedUrl":           opts.ExcludedURL,
		"storeScan":             opts.StoreScan,
		"aiModel":               opts.AIModel,
		"scan_ai":               opts.ScanAI,
		"scan_plag":             opts.ScanPlag,
		"scan_readability":      true,
		"scan_grammar_spelling": true,
	}

	ctx, span := otel.Tracer("originality").Start(ctx, "originality.new_scan")
	defer span.End()
	span.SetAttributes(attribute.Int("content.length", len(content)))

	return c.request(ctx, http.MethodPost, "scan", payload)
}

// ScanURL submits a URL for analysis instead of raw content.
func (c *Client) ScanURL(ctx context.Context, url string, opts ScanOptions) document.Document {
	payload := map[string]any{
		"url":        url,
		"aidetect":   opts.ScanAI,
		"plagiarism": opts.ScanPlag,
	}
	return c.request(ctx, http.MethodPost, "scan/url", payload)
}

// GetScan fetches the stored result for a scan id.
func (c *Client) GetScan(ctx context.Context, scanID string) document.Document {
	return c.request(ctx, http.MethodGet, "scan/"+scanID, nil)
}

// ListScans fetches a page of stored scans.
func (c *Client) ListScans(ctx context.Context, page, limit int) document.Document {
	endpoint := fmt.Sprintf("scans?page=%d&limit=%d", page, limit)
	return c.request(ctx, http.MethodGet, endpoint, nil)
}

// request performs one API call. Every failure mode collapses to an
// error-only document; a Go error never crosses this boundary.
func (c *Client) request(ctx context.Context, method, endpoint string, payload any) document.Document {
	url := c.baseURL + "/" + endpoint

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return document.ErrorDocument(fmt.Sprintf("failed to encode request: %v", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return document.ErrorDocument(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("scan request failed", "method", method, "endpoint", endpoint, "error", err)
		return document.ErrorDocument(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.ErrorDocument(fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("scan request rejected",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
		)
		return document.ErrorDocument(fmt.Sprintf("%d %s: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), truncate(string(data), 200)))
	}

	doc, err := document.FromJSON(data)
	if err != nil {
		return document.ErrorDocument(err.Error())
	}
	return doc
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
