// Package main is the entry point for the Inkwell blog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
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

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/mailer"
	"inkwell/internal/middleware"
	"inkwell/internal/moderation"
	"inkwell/internal/render"
	"inkwell/internal/router"
	"inkwell/internal/store"
	"inkwell/web"
)

func main() {
	// Load configuration first so the log level can follow the environment.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"time_zone", cfg.TimeZone,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db, cfg.Location); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the listing page cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	// Templates or seed data may have changed since the last run.
	pageCache.InvalidateAll(context.Background())

	// Outgoing mail: SMTP when configured, otherwise the log.
	var sender mailer.Sender = mailer.LogSender{}
	if cfg.SMTPHost != "" {
		sender, err = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
		if err != nil {
			slog.Error("failed to configure smtp", "error", err)
			os.Exit(1)
		}
		slog.Info("smtp mail enabled", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		slog.Warn("SMTP_HOST not set, recommendation emails will only be logged")
	}

	// Comment moderation is optional.
	var moderator moderation.Checker
	if cfg.ModerationAPIKey != "" {
		moderator = moderation.NewOpenAI(cfg.ModerationAPIKey, cfg.ModerationBaseURL)
		slog.Info("comment moderation enabled", "base_url", cfg.ModerationBaseURL)
	}

	renderer, err := render.New(cfg.SiteName)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	svc := blog.NewService(
		store.NewPostStore(db, cfg.Location),
		store.NewTagStore(db),
		store.NewCommentStore(db),
		sender,
		blog.Options{
			MailFrom:        cfg.MailFrom,
			Location:        cfg.Location,
			RequireApproval: cfg.CommentsRequireApproval,
			Moderator:       moderator,
		},
	)

	// Ten form submissions per client per minute.
	formLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer formLimiter.Stop()

	r := router.New(handlers.NewBlog(svc, renderer, pageCache, cfg.SiteURL), router.Options{
		SecureCookies: !cfg.IsDev(),
		FormLimiter:   formLimiter,
		Static:        web.StaticFS(),
	})

	// WriteTimeout covers the SMTP dial and send on the share form.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
