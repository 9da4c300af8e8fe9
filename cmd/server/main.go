package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zombar/scanreport/internal/api"
	"github.com/zombar/scanreport/internal/config"
	"github.com/zombar/scanreport/internal/database"
	"github.com/zombar/scanreport/internal/originality"
	"github.com/zombar/scanreport/internal/queue"
	"github.com/zombar/scanreport/internal/scanner"
	"github.com/zombar/scanreport/pkg/logging"
	"github.com/zombar/scanreport/pkg/tracing"
)

func main() {
	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("scanreport service initializing", "version", "1.0.0")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Originality.APIKey == "" {
		logger.Warn("no API key configured, scan submissions will be rejected by the remote service",
			"env", "SCANREPORT_ORIGINALITY_API_KEY")
	}

	// Initialize tracing
	tp, err := tracing.InitTracer("scanreport")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to initialize database", "error", err, "database_path", cfg.Database.Path)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize remote-service client and scan orchestrator
	client := originality.New(cfg.Originality.URL, cfg.Originality.APIKey)
	client.SetTimeout(cfg.Originality.Timeout)
	sc := scanner.New(client)

	// Initialize batch queue when enabled; the API falls back to
	// synchronous-only operation without it.
	var queueClient api.QueueClient
	if cfg.Queue.Enabled {
		qc := queue.NewClient(queue.ClientConfig{RedisAddr: cfg.Redis.Addr})
		defer qc.Close()
		queueClient = qc

		worker := queue.NewWorker(queue.WorkerConfig{
			RedisAddr:   cfg.Redis.Addr,
			Concurrency: cfg.Queue.Concurrency,
		}, db, sc)
		go func() {
			if err := worker.Run(); err != nil {
				logger.Error("queue worker stopped", "error", err)
			}
		}()
		defer worker.Shutdown()
		logger.Info("batch queue initialized", "redis", cfg.Redis.Addr, "concurrency", cfg.Queue.Concurrency)
	} else {
		queueClient = queueDisabled{}
		logger.Info("batch queue disabled")
	}

	// Initialize API handler
	apiHandler := api.NewHandler(db, sc, queueClient)

	// Wrap handler with middleware chain: HTTP logging -> tracing -> handlers
	handler := logging.HTTPLoggingMiddleware(logger)(
		tracing.HTTPMiddleware("scanreport")(apiHandler),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("scanreport service starting",
			"address", cfg.Server.Address,
			"database", cfg.Database.Path,
			"queue_enabled", cfg.Queue.Enabled,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// queueDisabled rejects batch submissions when no queue is configured.
type queueDisabled struct{}

func (queueDisabled) EnqueueProcessScan(ctx context.Context, scanID, text, title string) (string, error) {
	return "", errors.New("batch queue is disabled")
}
