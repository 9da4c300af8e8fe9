package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/zombar/scanreport/internal/database"
	"github.com/zombar/scanreport/internal/models"
	"github.com/zombar/scanreport/internal/originality"
	"github.com/zombar/scanreport/internal/scanner"
)

// Worker wraps the Asynq server for processing scan tasks
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	db      *database.DB
	scanner *scanner.Scanner
	logger  *slog.Logger
}

// WorkerConfig contains configuration for the queue worker
type WorkerConfig struct {
	RedisAddr   string
	Concurrency int
}

// NewWorker creates a new queue worker
func NewWorker(cfg WorkerConfig, db *database.DB, sc *scanner.Scanner) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
	}

	serverCfg := asynq.Config{
		Concurrency: cfg.Concurrency,

		Queues: map[string]int{
			"scan-processing": 5,
		},

		// Backoff tuned for a rate-limited remote API: 1m, 5m, 15m
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			delays := []time.Duration{
				1 * time.Minute,
				5 * time.Minute,
				15 * time.Minute,
			}
			if n < len(delays) {
				return delays[n]
			}
			return delays[len(delays)-1]
		},

		ShutdownTimeout: 30 * time.Second,

		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)

			slog.Error("task processing error",
				"task_type", task.Type(),
				"error", err,
				"retry_count", retried,
				"max_retries", maxRetry,
			)
		}),
	}

	w := &Worker{
		server:  asynq.NewServer(redisOpt, serverCfg),
		mux:     asynq.NewServeMux(),
		db:      db,
		scanner: sc,
		logger:  slog.Default(),
	}

	w.mux.HandleFunc(TypeProcessScan, w.handleProcessScan)

	return w
}

// Run starts the worker and blocks until shutdown.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// handleProcessScan runs one background scan end to end: submit the text,
// derive, and persist. A failed scan is stored as an error record rather
// than retried forever; only enqueue/storage problems are retriable.
func (w *Worker) handleProcessScan(ctx context.Context, task *asynq.Task) error {
	var payload ProcessScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	queueWait := time.Since(time.Unix(0, payload.EnqueuedAt))
	w.logger.Info("processing scan task",
		"scan_id", payload.ScanID,
		"text_length", len(payload.Text),
		"queue_wait_ms", queueWait.Milliseconds(),
		"trace_id", payload.TraceID,
	)

	opts := originality.DefaultScanOptions()
	if payload.Title != "" {
		opts.Title = payload.Title
	}
	result := w.scanner.Scan(ctx, payload.Text, opts)

	rec := models.RecordFromResult(payload.ScanID, payload.Title, result)
	if err := w.db.SaveScan(rec); err != nil {
		return fmt.Errorf("failed to save scan %s: %w", payload.ScanID, err)
	}

	if result.Document.IsError() {
		w.logger.Warn("scan completed with service error",
			"scan_id", payload.ScanID,
			"error", result.Document.Err(),
		)
	} else {
		w.logger.Info("scan task completed", "scan_id", payload.ScanID)
	}

	return nil
}
