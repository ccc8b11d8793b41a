// Command clip-relay is the main entrypoint for the clip relay service.
// It:
//   - Loads configuration and initializes structured logging.
//   - Validates the Twitch and Discord credentials up front.
//   - Exposes an HTTP server whose root endpoint creates a clip of the
//     configured broadcaster and announces it on a Discord webhook.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/onnwee/clip-relay/clip"
	"github.com/onnwee/clip-relay/config"
	"github.com/onnwee/clip-relay/discord"
	"github.com/onnwee/clip-relay/server"
	"github.com/onnwee/clip-relay/telemetry"
	"github.com/onnwee/clip-relay/twitchapi"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config validation failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("clip-relay", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	announcer, err := discord.NewAnnouncer(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
	if err != nil {
		slog.Error("discord announcer init failed", slog.Any("err", err))
		os.Exit(1)
	}

	clips := &clip.Service{
		Tokens: &twitchapi.OAuthClient{
			ClientID:     cfg.TwitchClientID,
			ClientSecret: cfg.TwitchClientSecret,
			RefreshToken: cfg.TwitchRefreshToken,
		},
		Clips: &twitchapi.HelixClient{
			ClientID:      cfg.TwitchClientID,
			BroadcasterID: cfg.TwitchBroadcasterID,
		},
		Discord:       announcer,
		AnnounceDelay: cfg.AnnounceDelay,
	}

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting http server", slog.String("addr", cfg.HTTPAddr), slog.String("broadcaster_id", cfg.TwitchBroadcasterID))
	if err := server.Start(ctx, clips, cfg.HTTPAddr); err != nil {
		slog.Error("http server exited with error", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("shutting down")
}
