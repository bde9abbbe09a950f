// Command docsiftd serves document extraction over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsawler/docsift"
	"github.com/tsawler/docsift/config"
	"github.com/tsawler/docsift/internal/contextstore"
	"github.com/tsawler/docsift/internal/server"
	"github.com/tsawler/docsift/rag"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides server.addr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ex, err := docsift.FromConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to create extractor", "error", err)
		os.Exit(1)
	}

	if err := ex.Warm(); err != nil {
		logger.Warn("OCR engines unavailable, continuing without them", "error", err)
	}

	splitter := &rag.Splitter{
		ChunkSize:      cfg.Chunking.ChunkSize,
		Overlap:        cfg.Chunking.Overlap,
		TokenRatio:     cfg.Chunking.TokenRatio,
		TokenThreshold: cfg.Chunking.TokenThreshold,
	}
	svc := server.New(ex, splitter, contextstore.New(), cfg.Server.MaxUploadBytes, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server started", "addr", cfg.Server.Addr, "parallel", cfg.OCR.Parallel, "workers", cfg.OCR.MaxWorkers)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to stop server", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
