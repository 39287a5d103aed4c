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

	"github.com/nekogravitycat/club-booking-backend/internal/app"
	"github.com/nekogravitycat/club-booking-backend/internal/config"
	"github.com/nekogravitycat/club-booking-backend/internal/db"
	"github.com/nekogravitycat/club-booking-backend/internal/event"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.AutoMigrate {
		if err := db.MigrateUp(cfg.DBDSN); err != nil {
			slog.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{
		ConnectTimeout: cfg.DBConnectTimeout,
		IdleTimeout:    cfg.DBIdleTimeout,
		MaxConns:       int32(cfg.DBMaxConns),
	})
	if err != nil {
		slog.Error("failed to connect to db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	publisher := event.New(cfg.KafkaBrokers, cfg.KafkaReservationTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("failed to close event publisher", slog.Any("error", err))
		}
	}()

	container, err := app.NewContainer(cfg, pool, publisher)
	if err != nil {
		slog.Error("failed to init app", slog.Any("error", err))
		os.Exit(1)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		slog.Info("server running", slog.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	slog.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("server exited gracefully")
}
