package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desierto/ranky/internal/adapters/chat/discord"
	"github.com/desierto/ranky/internal/adapters/http/api"
	"github.com/desierto/ranky/internal/adapters/riot"
	app "github.com/desierto/ranky/internal/app"
	"github.com/desierto/ranky/internal/config"
	"github.com/desierto/ranky/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.DiscordToken == "" {
		os.Stderr.WriteString("RANKY_DISCORD_TOKEN must be set\n")
		return
	}

	session, err := discord.New(cfg.DiscordToken, discord.WithLogger(log.Named("discord")))
	if err != nil {
		log.Error(ctx, "failed to create discord session", logger.Error(err))
		return
	}

	resolver := riot.NewClient(cfg.RiotAPIKey,
		riot.WithAccountBaseURL(cfg.RiotAccountBaseURL),
		riot.WithPlatformBaseURL(cfg.RiotPlatformBaseURL),
		riot.WithLogger(log.Named("riot")),
	)

	svc := app.New(session, resolver,
		app.WithLogger(log.Named("service")),
		app.WithPrefix(cfg.Prefix),
		app.WithConfigChannel(cfg.ConfigChannel),
		app.WithScanWindow(cfg.ScanWindow),
		app.WithFetchTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		app.WithReportNotFound(cfg.ReportNotFound),
		app.WithTrimAccounts(cfg.TrimAccounts),
		app.WithDedupeAccounts(cfg.DedupeAccounts),
	)

	// Every inbound message is dispatched independently; failures are
	// terminal for that message only.
	session.OnMessage(func(channelID, authorID, content string) {
		if err := svc.HandleMessage(ctx, channelID, content); err != nil {
			log.Error(ctx, "command failed",
				logger.String("channel", channelID),
				logger.String("author", authorID),
				logger.Error(err),
			)
		}
	})

	if err := session.Open(); err != nil {
		log.Error(ctx, "failed to open discord session", logger.Error(err))
		return
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Error(ctx, "failed to close discord session", logger.Error(err))
		}
	}()
	log.Info(ctx, "discord session open",
		logger.String("config_channel", cfg.ConfigChannel),
		logger.String("prefix", cfg.Prefix),
		logger.Int("scan_window", cfg.ScanWindow),
	)

	// Ops HTTP server: health and metrics.
	mux := http.NewServeMux()
	api.NewServer().Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting ops HTTP server", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "ops HTTP server failed", logger.Error(err))
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "ops server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "stopped")
}
