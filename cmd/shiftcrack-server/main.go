// Package main provides the HTTP server for shiftcrack.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/shiftcrack/internal/api"
	"github.com/raphaelgruber/shiftcrack/internal/config"
	"github.com/raphaelgruber/shiftcrack/internal/metrics"
	"github.com/raphaelgruber/shiftcrack/internal/service"
)

func main() {
	// Parse flags
	allowAnyOrigin := flag.Bool("allow-any-origin", false, "accept websocket connections from any origin (local development)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	port := cfg.ServerPort

	// Initialize logging
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("starting shiftcrack-server", "port", port)

	svc := service.NewCipherService(logger, metrics.NewCollector(), cfg.Workers)

	options := []api.Option{api.WithLogger(logger)}
	if *allowAnyOrigin {
		options = append(options, api.WithCheckOrigin(func(r *http.Request) bool {
			return true
		}))
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      api.New(svc, options...),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // Long for interactive websocket sessions
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s/api/", port))
		logger.Info("candidate stream available", "url", fmt.Sprintf("ws://localhost:%s/ws/candidates", port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
