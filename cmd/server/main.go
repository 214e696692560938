package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/chirpy/internal/config"
	"github.com/iudanet/chirpy/internal/server/auth"
	"github.com/iudanet/chirpy/internal/server/handlers"
	"github.com/iudanet/chirpy/internal/server/middleware"
	"github.com/iudanet/chirpy/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	codec := auth.NewTokenService([]byte(cfg.JWTSecret))
	sessions := auth.NewSessionService(store, store, codec)

	authHandler := handlers.NewAuthHandler(logger, sessions, cfg.AccessTokenTTL)
	usersHandler := handlers.NewUsersHandler(logger, store)
	webhooksHandler := handlers.NewWebhooksHandler(logger, store, cfg.PolkaKey)
	adminHandler := handlers.NewAdminHandler(logger, store, cfg.Platform)
	healthHandler := handlers.NewHealthHandler(logger)

	requireAuth := middleware.Auth(logger, codec)
	loginLimit := middleware.RateLimit(10, time.Minute, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/healthz", healthHandler.Health)
	mux.HandleFunc("POST /api/users", usersHandler.Create)
	mux.Handle("PUT /api/users", requireAuth(http.HandlerFunc(usersHandler.Update)))
	mux.Handle("POST /api/login", loginLimit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/revoke", authHandler.Revoke)
	mux.HandleFunc("POST /api/polka/webhooks", webhooksHandler.Handle)
	mux.HandleFunc("POST /admin/reset", adminHandler.Reset)

	handler := middleware.Recovery(logger)(middleware.Logging(logger)(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", cfg.Addr),
			slog.String("platform", string(cfg.Platform)),
			slog.String("version", Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func printVersion() {
	fmt.Printf("Chirpy Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
