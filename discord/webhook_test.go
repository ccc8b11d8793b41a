package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onnwee/clip-relay/testutil"
)

func TestAnnounce(t *testing.T) {
	var gotPath, gotMethod, gotContentType string
	var gotBody struct {
		Content string `json:"content"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode webhook body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a, err := NewAnnouncer("wid-123", "wtok-456")
	if err != nil {
		t.Fatalf("NewAnnouncer() error = %v", err)
	}
	a.Session.Client = testutil.Client(srv)

	msg := "A new clip was created! :)\n\nhttps://clips.twitch.tv/abc123"
	if err := a.Announce(context.Background(), msg); err != nil {
		t.Fatalf("Announce() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if !strings.HasSuffix(gotPath, "/webhooks/wid-123/wtok-456") {
		t.Errorf("path = %q, want suffix /webhooks/wid-123/wtok-456", gotPath)
	}
	if !strings.HasPrefix(gotContentType, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody.Content != msg {
		t.Errorf("content = %q, want %q", gotBody.Content, msg)
	}
}

func TestAnnounceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Unknown Webhook","code":10015}`))
	}))
	defer srv.Close()

	a, err := NewAnnouncer("wid-123", "bad-token")
	if err != nil {
		t.Fatalf("NewAnnouncer() error = %v", err)
	}
	a.Session.Client = testutil.Client(srv)

	if err := a.Announce(context.Background(), "hello"); err == nil {
		t.Fatal("Announce() = nil error, want failure for unknown webhook")
	}
}
