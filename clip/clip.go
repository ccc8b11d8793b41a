// Package clip implements the request pipeline: fetch a Twitch access token,
// create a clip, wait out Twitch's processing delay, then announce the clip
// on Discord. Every run is independent; nothing is shared between requests.
package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/onnwee/clip-relay/telemetry"
	"github.com/onnwee/clip-relay/twitchapi"
)

// Status messages returned to the command issuer. Chat commands display these
// verbatim, so the wording is part of the public behavior.
const (
	StatusTokenFailed     = "Unexpected problem when fetching the access token."
	StatusClipUnavailable = "Twitch API didn't want to create a clip right now, you need to manually create the clip :("
	StatusChannelOffline  = "I can't clip while the channel is offline :("
	StatusClipFailed      = "Unexpected problem when creating the clip."
	StatusAnnounceFailed  = "Unexpected problem when posting to Discord."
	StatusSuccess         = "A new clip was created in the Discord server! :)"
)

// TokenProvider fetches a fresh Twitch access token.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// ClipCreator cuts a clip of the configured broadcaster.
type ClipCreator interface {
	CreateClip(ctx context.Context, accessToken string) (twitchapi.Clip, error)
}

// Announcer posts a message to the Discord webhook.
type Announcer interface {
	Announce(ctx context.Context, content string) error
}

// Service sequences the pipeline stages and reduces every outcome to one of
// the fixed status strings. Errors are logged here; their detail never reaches
// the caller.
type Service struct {
	Tokens  TokenProvider
	Clips   ClipCreator
	Discord Announcer

	// AnnounceDelay separates clip creation from the announcement so Twitch
	// can finish processing the clip before anyone follows the link.
	AnnounceDelay time.Duration
}

// Run executes one pipeline run. Each stage failure is terminal: no retries,
// and a clip that was already created is not deleted when announcing fails.
func (s *Service) Run(ctx context.Context, displayName string) string {
	if telemetry.RunsStarted != nil {
		telemetry.RunsStarted.Inc()
	}
	start := time.Now()
	defer func() {
		if telemetry.RunDuration != nil {
			telemetry.RunDuration.Observe(time.Since(start).Seconds())
		}
	}()
	log := telemetry.LoggerWithCorr(ctx)

	token, err := s.Tokens.AccessToken(ctx)
	if err != nil {
		log.Error("access token fetch failed", slog.Any("err", err))
		if telemetry.TokenFailures != nil {
			telemetry.TokenFailures.Inc()
		}
		return StatusTokenFailed
	}

	c, err := s.Clips.CreateClip(ctx, token)
	if err != nil {
		log.Error("clip creation failed", slog.Any("err", err))
		if telemetry.ClipsFailed != nil {
			telemetry.ClipsFailed.Inc()
		}
		switch {
		case errors.Is(err, twitchapi.ErrServiceUnavailable):
			return StatusClipUnavailable
		case errors.Is(err, twitchapi.ErrChannelOffline):
			return StatusChannelOffline
		}
		return StatusClipFailed
	}
	if telemetry.ClipsCreated != nil {
		telemetry.ClipsCreated.Inc()
	}
	log.Info("clip created", slog.String("clip_id", c.ID), slog.String("url", c.URL))

	if err := s.waitAnnounceDelay(ctx); err != nil {
		// Caller is gone. The clip exists but the announcement never happened.
		log.Warn("run canceled during announce delay", slog.Any("err", err))
		return StatusAnnounceFailed
	}

	if err := s.Discord.Announce(ctx, AnnounceMessage(displayName, c.URL)); err != nil {
		log.Error("discord announcement failed", slog.Any("err", err))
		if telemetry.AnnouncementsFailed != nil {
			telemetry.AnnouncementsFailed.Inc()
		}
		return StatusAnnounceFailed
	}
	if telemetry.AnnouncementsPosted != nil {
		telemetry.AnnouncementsPosted.Inc()
	}
	log.Info("clip announced", slog.String("clip_id", c.ID))
	return StatusSuccess
}

// waitAnnounceDelay blocks for AnnounceDelay or until ctx is canceled.
func (s *Service) waitAnnounceDelay(ctx context.Context) error {
	if s.AnnounceDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.AnnounceDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AnnounceMessage formats the Discord message for a new clip. The wording is
// deliberately different from StatusSuccess: the webhook speaks to the Discord
// channel, the status string to whoever issued the chat command.
func AnnounceMessage(displayName, clipURL string) string {
	if displayName != "" {
		return fmt.Sprintf("A new clip was created by @%s! :)\n\n%s", displayName, clipURL)
	}
	return fmt.Sprintf("A new clip was created! :)\n\n%s", clipURL)
}
