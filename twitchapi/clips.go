// Package twitchapi contains minimal helpers to interact with the Twitch OAuth
// and Helix clip APIs: refresh-token grants and clip creation for a single
// configured broadcaster.
package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const (
	clipsURL    = "https://api.twitch.tv/helix/clips"
	clipURLBase = "https://clips.twitch.tv/"
)

// HelixClient provides the single Helix method needed here: clip creation.
type HelixClient struct {
	ClientID      string
	BroadcasterID string
	HTTPClient    *http.Client
}

func (hc *HelixClient) http() *http.Client {
	if hc.HTTPClient != nil {
		return hc.HTTPClient
	}
	return http.DefaultClient
}

// Clip is a created clip with its public URL.
type Clip struct {
	ID  string
	URL string
}

type createClipResponse struct {
	Data []struct {
		ID      string `json:"id"`
		EditURL string `json:"edit_url"`
	} `json:"data"`
}

// CreateClip cuts a clip of the configured broadcaster's live stream.
// Failed responses go through classifyClipError so callers can tell an
// offline channel or an unavailable API apart from everything else.
func (hc *HelixClient) CreateClip(ctx context.Context, accessToken string) (Clip, error) {
	if hc.BroadcasterID == "" {
		return Clip{}, fmt.Errorf("broadcasterID empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, clipsURL, nil)
	if err != nil {
		return Clip{}, err
	}
	q := req.URL.Query()
	q.Set("broadcaster_id", hc.BroadcasterID)
	q.Set("has_delay", "false")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Client-Id", hc.ClientID)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := hc.http().Do(req)
	if err != nil {
		return Clip{}, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Clip{}, err
	}
	// Helix answers 202 Accepted on success, so check the whole 2xx range.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Clip{}, classifyClipError(resp.StatusCode, b)
	}
	var body createClipResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return Clip{}, fmt.Errorf("decode clip response: %w", err)
	}
	if len(body.Data) == 0 || body.Data[0].ID == "" {
		return Clip{}, fmt.Errorf("no clip in twitch response: %s", string(b))
	}
	id := body.Data[0].ID
	return Clip{ID: id, URL: clipURLBase + id}, nil
}
