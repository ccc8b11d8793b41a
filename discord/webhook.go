// Package discord posts clip announcements to a pre-registered Discord webhook.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Announcer executes a Discord webhook identified by id + token. Webhook
// execution needs no bot token, so the underlying session is unauthenticated.
type Announcer struct {
	WebhookID    string
	WebhookToken string
	Session      *discordgo.Session
}

// NewAnnouncer builds an Announcer for the given webhook credentials.
func NewAnnouncer(webhookID, webhookToken string) (*Announcer, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Announcer{WebhookID: webhookID, WebhookToken: webhookToken, Session: s}, nil
}

// Announce posts content to the webhook. Failures keep discordgo's REST error,
// which carries the raw response body for diagnostics.
func (a *Announcer) Announce(ctx context.Context, content string) error {
	_, err := a.Session.WebhookExecute(a.WebhookID, a.WebhookToken, false,
		&discordgo.WebhookParams{Content: content}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord webhook execute: %w", err)
	}
	return nil
}
