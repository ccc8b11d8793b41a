package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"TWITCH_CLIENT_ID", "TWITCH_CLIENT_SECRET", "TWITCH_REFRESH_TOKEN",
		"TWITCH_BROADCASTER_ID", "DISCORD_WEBHOOK_ID", "DISCORD_WEBHOOK_TOKEN",
		"HTTP_ADDR", "CLIP_ANNOUNCE_DELAY",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.AnnounceDelay != DefaultAnnounceDelay {
		t.Errorf("AnnounceDelay = %v, want %v", cfg.AnnounceDelay, DefaultAnnounceDelay)
	}
}

func TestLoadAnnounceDelay(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "default when unset", value: "", want: 4 * time.Second},
		{name: "custom duration", value: "250ms", want: 250 * time.Millisecond},
		{name: "invalid duration", value: "four seconds", wantErr: true},
		{name: "negative duration", value: "-1s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLIP_ANNOUNCE_DELAY", tt.value)
			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if cfg.AnnounceDelay != tt.want {
				t.Errorf("AnnounceDelay = %v, want %v", cfg.AnnounceDelay, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	full := func() *Config {
		return &Config{
			TwitchClientID:      "id",
			TwitchClientSecret:  "secret",
			TwitchRefreshToken:  "refresh",
			TwitchBroadcasterID: "123",
			DiscordWebhookID:    "456",
			DiscordWebhookToken: "tok",
		}
	}

	if err := full().Validate(); err != nil {
		t.Fatalf("Validate() on complete config = %v, want nil", err)
	}

	cfg := full()
	cfg.TwitchRefreshToken = ""
	cfg.DiscordWebhookID = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error for missing fields")
	}
	// Every missing variable should be reported at once.
	for _, want := range []string{"TWITCH_REFRESH_TOKEN", "DISCORD_WEBHOOK_ID"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "TWITCH_CLIENT_ID") {
		t.Errorf("Validate() error %q names a field that is present", err)
	}
}
