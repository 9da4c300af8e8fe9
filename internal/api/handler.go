// Package api exposes the scan pipeline over HTTP: submit a scan, list and
// fetch stored scans, render reports, and enqueue batches.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/zombar/scanreport/internal/database"
	"github.com/zombar/scanreport/internal/document"
	"github.com/zombar/scanreport/internal/models"
	"github.com/zombar/scanreport/internal/originality"
	"github.com/zombar/scanreport/internal/report"
	"github.com/zombar/scanreport/internal/scanner"
)

// ScanRunner is the slice of the scan orchestrator the handler needs.
type ScanRunner interface {
	Scan(ctx context.Context, text string, opts originality.ScanOptions) *scanner.Result
}

// QueueClient enqueues background scan tasks.
type QueueClient interface {
	EnqueueProcessScan(ctx context.Context, scanID, text, title string) (string, error)
}

// Handler handles HTTP requests
type Handler struct {
	db          *database.DB
	scanner     ScanRunner
	queueClient QueueClient
	mux         *http.ServeMux
}

// NewHandler creates a new API handler with CORS support and metrics
func NewHandler(db *database.DB, sc ScanRunner, queueClient QueueClient) http.Handler {
	h := &Handler{
		db:          db,
		scanner:     sc,
		queueClient: queueClient,
		mux:         http.NewServeMux(),
	}

	h.setupRoutes()

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(h.mux)
}

// setupRoutes configures all API routes
func (h *Handler) setupRoutes() {
	h.mux.Handle("/metrics", promhttp.Handler()) // Prometheus metrics endpoint
	h.mux.HandleFunc("/api/scan", h.handleScan)
	h.mux.HandleFunc("/api/batch", h.handleBatch)
	h.mux.HandleFunc("/api/jobs/", h.handleJobStatus)
	h.mux.HandleFunc("/api/scans", h.handleListScans)
	h.mux.HandleFunc("/api/scans/", h.handleScanOperations)
	h.mux.HandleFunc("/health", h.handleHealth)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleScan submits text for analysis, waits for the result and stores it.
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text        string `json:"text"`
		Title       string `json:"title,omitempty"`
		ExcludedURL string `json:"excluded_url,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		respondError(w, "Text field is required", http.StatusBadRequest)
		return
	}

	opts := originality.DefaultScanOptions()
	if req.Title != "" {
		opts.Title = req.Title
	}
	opts.ExcludedURL = req.ExcludedURL

	result := h.scanner.Scan(r.Context(), req.Text, opts)

	rec := models.RecordFromResult(uuid.NewString(), req.Title, result)
	if err := h.db.SaveScan(rec); err != nil {
		respondError(w, fmt.Sprintf("Failed to save scan: %v", err), http.StatusInternalServerError)
		return
	}

	if result.Document.IsError() {
		scansTotal.WithLabelValues("failed").Inc()
	} else {
		scansTotal.WithLabelValues("completed").Inc()
	}

	respondJSON(w, map[string]any{
		"id":       rec.ID,
		"failed":   rec.Failed,
		"document": result.Document,
		"insights": result.Insights,
		"summary":  result.Summary,
	}, http.StatusOK)
}

// handleBatch enqueues one background task per batch item. Items are
// independent; they complete in any order.
func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Items []struct {
			Text  string `json:"text"`
			Title string `json:"title,omitempty"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		respondError(w, "At least one item is required", http.StatusBadRequest)
		return
	}

	type job struct {
		JobID  string `json:"job_id"`
		TaskID string `json:"task_id,omitempty"`
		Status string `json:"status"`
	}

	jobs := make([]job, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Text == "" {
			jobs = append(jobs, job{Status: "rejected"})
			continue
		}
		scanID := uuid.NewString()
		taskID, err := h.queueClient.EnqueueProcessScan(r.Context(), scanID, item.Text, item.Title)
		if err != nil {
			respondError(w, fmt.Sprintf("Failed to enqueue scan: %v", err), http.StatusInternalServerError)
			return
		}
		batchItemsEnqueued.Inc()
		jobs = append(jobs, job{JobID: scanID, TaskID: taskID, Status: "queued"})
	}

	respondJSON(w, map[string]any{"jobs": jobs}, http.StatusAccepted)
}

// handleJobStatus handles job status requests
func (h *Handler) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if idx := strings.Index(jobID, "/"); idx != -1 {
		jobID = jobID[:idx]
	}

	if jobID == "" {
		respondError(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	rec, err := h.db.GetScan(jobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSON(w, map[string]any{
				"job_id":  jobID,
				"status":  "pending",
				"message": "Scan not complete - it may still be queued or has expired",
			}, http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := "completed"
	if rec.Failed {
		status = "failed"
	}

	respondJSON(w, map[string]any{
		"job_id":     jobID,
		"status":     status,
		"created_at": rec.CreatedAt,
		"scan":       rec,
	}, http.StatusOK)
}

// handleListScans handles listing stored scans with pagination
func (h *Handler) handleListScans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	records, err := h.db.ListScans(limit, offset)
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*models.ScanRecord{}
	}
	respondJSON(w, records, http.StatusOK)
}

// handleScanOperations routes GET/DELETE for one scan and its reports.
func (h *Handler) handleScanOperations(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/scans/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		respondError(w, "Scan ID is required", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "report" && r.Method == http.MethodGet:
		h.getReport(w, r, id)
	case sub == "" && r.Method == http.MethodGet:
		h.getScan(w, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.deleteScan(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// getScan retrieves a stored scan record
func (h *Handler) getScan(w http.ResponseWriter, id string) {
	rec, err := h.db.GetScan(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, err.Error(), http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, rec, http.StatusOK)
}

// getReport re-derives a stored scan's report artifact on demand. The raw
// document is the source of truth; derived views are never persisted.
func (h *Handler) getReport(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.db.GetScan(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, err.Error(), http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	doc := document.FromMap(rec.Document)
	format := r.URL.Query().Get("format")
	switch format {
	case "text":
		reportsRendered.WithLabelValues("text").Inc()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, report.FormatText(doc))
	case "html", "":
		result := scanner.Process(doc)
		reportsRendered.WithLabelValues("html").Inc()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, result.HTML)
	default:
		respondError(w, "Unknown report format: "+format, http.StatusBadRequest)
	}
}

// deleteScan deletes a stored scan
func (h *Handler) deleteScan(w http.ResponseWriter, id string) {
	if err := h.db.DeleteScan(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, err.Error(), http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
