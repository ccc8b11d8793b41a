package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/onnwee/clip-relay/clip"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	clips *clip.Service
}

// NewHandlers creates a new Handlers instance with the given dependencies.
func NewHandlers(clips *clip.Service) *Handlers {
	return &Handlers{clips: clips}
}

// clipEnvelope mirrors the proxy-style response the chat integration expects:
// the transport status is always 200 and the outcome only shows in the body
// text, so a chat command can print it verbatim.
type clipEnvelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// HandleClip serves GET / with an optional ?user=<display name> parameter,
// runs the clip pipeline, and always answers 200 with a status string.
func (h *Handlers) HandleClip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user := r.URL.Query().Get("user")

	// The run must finish (and announce) even when the chat integration times
	// out and drops the connection, so detach from the caller's cancellation
	// while keeping correlation values.
	status := h.clips.Run(context.WithoutCancel(r.Context()), user)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(clipEnvelope{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       status,
	}); err != nil {
		slog.Error("failed to write clip response", slog.Any("err", err))
	}
}

// HandleHealthz responds to liveness probe requests.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
