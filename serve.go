package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/catalog"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/config"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/handler"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  "Open the database, apply migrations, seed the built-in content and serve HTTP until SIGINT or SIGTERM.",
	RunE:  runServe,
}

var servePort string

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	setupLogger(cfg.SlogLevel())

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "driver", cfg.DatabaseDriver)

	contentService := service.NewContentService(db.Content())
	progressService := service.NewProgressService(db.QuestionProgress(), db.Solutions(), db.Content())
	readinessService := service.NewReadinessService(catalog.Default(), db.Completions(), db.Readiness(), db.Content())

	// Seed built-in stages and questions (idempotent).
	if err := contentService.SeedDefaults(ctx, catalog.DefaultContent()); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	slog.Info("built-in content seeded")

	adminHash := cfg.AdminPasswordHash
	if adminHash == "" && cfg.AdminPassword != "" {
		adminHash, err = service.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	}
	adminService := service.NewAdminService(adminHash, cfg.JWTSecret)
	if !adminService.Enabled() {
		slog.Warn("no admin password configured, admin panel disabled")
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Content:      contentService,
		Progress:     progressService,
		Readiness:    readinessService,
		Admin:        adminService,
		LoginLimiter: service.NewTokenBucket(ctx, cfg.LoginRatePerMinute/60, cfg.LoginRatePerMinute),
		CookieSecure: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.LogRequests(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
