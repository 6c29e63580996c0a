package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/mhagen/ordercast/internal/app"
	"github.com/mhagen/ordercast/internal/broadcast"
	"github.com/mhagen/ordercast/internal/config"
	"github.com/mhagen/ordercast/internal/domain"
	"github.com/mhagen/ordercast/internal/logging"
	"github.com/mhagen/ordercast/internal/memstore"
	"github.com/mhagen/ordercast/internal/postgres"
	"github.com/mhagen/ordercast/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *server.Server, hub *broadcast.Hub, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	var (
		repo         domain.OrderRepository
		healthChecks []server.HealthCheck
	)
	if cfg.DatabaseURL != "" {
		pool := setupDB(cfg)
		defer pool.Close()
		repo = postgres.NewOrderRepo(pool)
		healthChecks = append(healthChecks, server.HealthCheck{
			Name:  "postgres",
			Check: pool.Ping,
		})
	} else {
		slog.Warn("DATABASE_URL not set, orders will not survive restarts")
		store := memstore.NewOrderRepo()
		repo = store
		healthChecks = append(healthChecks, server.HealthCheck{
			Name:  "memstore",
			Check: store.Ping,
		})
	}

	hub := broadcast.NewHub(clock, cfg.MaxWebSocketClients)
	appSvc := app.NewService(repo, hub)

	srv, err := server.NewServer(cfg, appSvc, hub, healthChecks)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, hub, cfg.ShutdownTimeout)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
