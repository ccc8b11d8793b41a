package twitchapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// offlineClipMessage is the exact Helix error text returned when trying to
// clip a channel that is not live.
const offlineClipMessage = "Clipping is not possible for an offline channel."

var (
	// ErrChannelOffline marks a clip attempt against an offline channel.
	ErrChannelOffline = fmt.Errorf("channel is offline")
	// ErrServiceUnavailable marks a 503 "Service Unavailable" answer from Helix.
	ErrServiceUnavailable = fmt.Errorf("twitch api unavailable")
)

// HTTPError is a non-2xx response with its raw body preserved, so callers can
// log exactly what Twitch said.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("twitch request failed: status %d: %s", e.StatusCode, e.Body)
}

// APIError is the standard error body shape from Twitch.
type APIError struct {
	Err     string `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// readHTTPError drains a non-2xx response into an HTTPError.
func readHTTPError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	return &HTTPError{StatusCode: resp.StatusCode, Body: string(b)}
}

// classifyClipError maps a failed clip-creation response to a typed error.
// Matching is best-effort: anything unrecognized stays a plain HTTPError.
func classifyClipError(statusCode int, body []byte) error {
	if strings.Contains(string(body), offlineClipMessage) {
		return fmt.Errorf("%w: %s", ErrChannelOffline, string(body))
	}
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil &&
		apiErr.Status == http.StatusServiceUnavailable && apiErr.Err == "Service Unavailable" {
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, string(body))
	}
	return &HTTPError{StatusCode: statusCode, Body: string(body)}
}
