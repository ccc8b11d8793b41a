// Package testutil provides HTTP test doubles for the external services the
// pipeline talks to: the Twitch OAuth/Helix endpoints and a Discord webhook.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// MockTwitchServer creates a test server that mocks Twitch API responses.
type MockTwitchServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockTwitchServer creates a new mock Twitch API server.
func NewMockTwitchServer(t *testing.T) *MockTwitchServer {
	t.Helper()
	m := &MockTwitchServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockTokenResponse adds a handler for the /oauth2/token endpoint.
func (m *MockTwitchServer) MockTokenResponse(accessToken string) {
	m.Handlers["/oauth2/token"] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": "rotated-refresh-token",
			"token_type":    "bearer",
			"expires_in":    14400,
		})
	}
}

// MockClipResponse adds a handler for the /helix/clips endpoint answering 202
// with the given clip id.
func (m *MockTwitchServer) MockClipResponse(clipID string) {
	m.Handlers["/helix/clips"] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"id": clipID, "edit_url": "https://clips.twitch.tv/" + clipID + "/edit"},
			},
		})
	}
}

// MockClipError adds a handler for /helix/clips that fails with the given
// status code and raw body.
func (m *MockTwitchServer) MockClipError(statusCode int, body string) {
	m.Handlers["/helix/clips"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}
}

// RewriteTransport redirects every request to the test server regardless of
// the host the client dialed, so production URLs can stay in the code under test.
type RewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *RewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	if t.Host != "" {
		host := t.Host
		host = strings.TrimPrefix(host, "http://")
		host = strings.TrimPrefix(host, "https://")
		req.URL.Host = host
	}
	rt := t.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(req)
}

// Client returns an *http.Client whose requests all land on server.
func Client(server *httptest.Server) *http.Client {
	return &http.Client{Transport: &RewriteTransport{Host: server.URL}}
}
