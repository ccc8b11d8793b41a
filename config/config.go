// Package config loads environment variables and provides a typed Config used across the service.
// Required credentials are checked once at startup via Validate so a misconfigured
// deployment fails fast instead of failing on the first clip request.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultAnnounceDelay is how long we wait after creating a clip before
// announcing it, giving Twitch time to finish processing the clip.
const DefaultAnnounceDelay = 4 * time.Second

type Config struct {
	// Twitch
	TwitchClientID      string
	TwitchClientSecret  string
	TwitchRefreshToken  string
	TwitchBroadcasterID string

	// Discord webhook
	DiscordWebhookID    string
	DiscordWebhookToken string

	// Server
	HTTPAddr string

	// Pipeline
	AnnounceDelay time.Duration
}

// Load reads environment variables and applies defaults. It doesn't fail on
// missing credentials; call Validate when you need the full pipeline ready.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	cfg.TwitchClientSecret = os.Getenv("TWITCH_CLIENT_SECRET")
	cfg.TwitchRefreshToken = os.Getenv("TWITCH_REFRESH_TOKEN")
	cfg.TwitchBroadcasterID = os.Getenv("TWITCH_BROADCASTER_ID")

	cfg.DiscordWebhookID = os.Getenv("DISCORD_WEBHOOK_ID")
	cfg.DiscordWebhookToken = os.Getenv("DISCORD_WEBHOOK_TOKEN")

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.AnnounceDelay = DefaultAnnounceDelay
	if v := os.Getenv("CLIP_ANNOUNCE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CLIP_ANNOUNCE_DELAY (Go duration): %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid CLIP_ANNOUNCE_DELAY: must not be negative")
		}
		cfg.AnnounceDelay = d
	}

	return cfg, nil
}

// Validate checks every field the clip pipeline needs and reports all missing
// variables at once.
func (c *Config) Validate() error {
	var missing []string
	for _, f := range []struct {
		env string
		val string
	}{
		{"TWITCH_CLIENT_ID", c.TwitchClientID},
		{"TWITCH_CLIENT_SECRET", c.TwitchClientSecret},
		{"TWITCH_REFRESH_TOKEN", c.TwitchRefreshToken},
		{"TWITCH_BROADCASTER_ID", c.TwitchBroadcasterID},
		{"DISCORD_WEBHOOK_ID", c.DiscordWebhookID},
		{"DISCORD_WEBHOOK_TOKEN", c.DiscordWebhookToken},
	} {
		if f.val == "" {
			missing = append(missing, f.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}
	return nil
}
