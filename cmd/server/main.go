package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"scanalyze/internal/config"
	"scanalyze/internal/events"
	"scanalyze/internal/export"
	exportgoogle "scanalyze/internal/export/google"
	exportmem "scanalyze/internal/export/memory"
	"scanalyze/internal/gateway"
	"scanalyze/internal/server"
	"scanalyze/internal/service"
	"scanalyze/internal/storage"
	"scanalyze/internal/storage/sqlite"
	"scanalyze/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.DataBackend)

	publisher := newPublisher(cfg)
	defer publisher.Close()

	var gw gateway.Gateway = gateway.Noop{}
	if cfg.FlowServiceURL != "" {
		httpGw, err := gateway.NewHTTPGateway(cfg.FlowServiceURL, cfg.FlowAPIKey)
		if err != nil {
			slog.Error("Failed to initialize flow gateway", "error", err)
			os.Exit(1)
		}
		gw = httpGw
		slog.Info("Flow gateway configured", "url", cfg.FlowServiceURL)
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize tax report export", "error", err)
		os.Exit(1)
	}

	receipts := service.NewReceiptService(store, publisher)
	splits := service.NewSplitService(store, cfg.DefaultPayerName)
	insights := service.NewInsightsService(store, gw, exporter)

	router := server.New(receipts, splits, insights).Router()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		// h2c allows HTTP/2 without TLS for local and proxied deployments.
		Handler:        h2c.NewHandler(router, &http2.Server{}),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DataBackend == "sqlite" {
		return sqlite.New(cfg.SQLiteDBPath)
	}
	return storage.NewMemoryStore(), nil
}

func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{}
	}
	pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		// The event stream is advisory; run without it rather than refusing
		// to start.
		slog.Warn("AMQP unavailable, events disabled", "error", err)
		return events.NoopPublisher{}
	}
	slog.Info("AMQP publisher connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return pub
}

func newExporter(ctx context.Context, cfg *config.Config) (export.TaxReportWriter, error) {
	switch cfg.ExportBackend {
	case "sheets":
		return exportgoogle.NewFromEnv(ctx)
	case "memory":
		return exportmem.New(), nil
	default:
		return nil, nil
	}
}
