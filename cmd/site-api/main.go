// Package main provides the entry point for the Rudi-Media site API server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	_ "modernc.org/sqlite"

	"github.com/rudimedia/site-api/internal/api"
	"github.com/rudimedia/site-api/internal/auth"
	"github.com/rudimedia/site-api/internal/config"
	"github.com/rudimedia/site-api/internal/contact"
	"github.com/rudimedia/site-api/internal/content"
	"github.com/rudimedia/site-api/internal/metrics"
	"github.com/rudimedia/site-api/internal/slug"
	"github.com/rudimedia/site-api/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootstrapAdmin := flag.Bool("bootstrap-admin", false,
		"ensure the admin account from ADMIN_USERNAME/ADMIN_PASSWORD exists, then continue serving")
	seed := flag.Bool("seed", false,
		"insert sample blog posts into an empty database, then continue serving")
	flag.Parse()

	if err := run(*bootstrapAdmin, *seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(bootstrapAdmin, seed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(parseLogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := storage.MigrateSchema(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	store := storage.NewSQLiteStorage(db)
	defer store.Close()
	logger.Info("storage initialized", "path", cfg.DatabasePath)

	if err := metrics.Init(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.TokenSecret))
	authenticator := auth.NewAuthenticator(store, logger)
	guard := auth.NewAccessGuard(tokens, store, logger)

	if bootstrapAdmin {
		username := os.Getenv("ADMIN_USERNAME")
		password := os.Getenv("ADMIN_PASSWORD")
		if username == "" || password == "" {
			return fmt.Errorf("-bootstrap-admin requires ADMIN_USERNAME and ADMIN_PASSWORD")
		}
		created, err := auth.NewBootstrapService(store, logger).EnsureAdmin(ctx, username, password)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		if created {
			logger.Info("admin account created", "username", username)
		} else {
			logger.Info("admin account already exists", "username", username)
		}
	}

	allocator := slug.NewAllocator(store)
	posts := content.NewService(store, allocator, logger)
	contacts := contact.NewService(store, contact.NewLogMailer(logger, cfg.SenderEmail, cfg.ContactEmail), logger)

	if seed {
		n, err := posts.Seed(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed posts: %w", err)
		}
		logger.Info("seed complete", "posts_inserted", n)
	}

	uploads, err := api.NewDiskUploadStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload store: %w", err)
	}

	server := api.NewServer(api.Config{
		Posts:       posts,
		Contacts:    contacts,
		Auth:        authenticator,
		Guard:       guard,
		Tokens:      tokens,
		TokenTTL:    cfg.TokenTTL,
		Uploads:     uploads,
		Pinger:      store,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		LogLevel:    logLevel,
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsListenAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("server starting", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics listener starting", "addr", cfg.MetricsListenAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics listener failed: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics listener shutdown failed", "error", err)
	}

	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
