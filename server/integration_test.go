package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onnwee/clip-relay/clip"
	"github.com/onnwee/clip-relay/discord"
	"github.com/onnwee/clip-relay/testutil"
	"github.com/onnwee/clip-relay/twitchapi"
)

// newIntegrationService wires the real Twitch and Discord clients against
// local mock servers, leaving only the network fake.
func newIntegrationService(t *testing.T, twitch *testutil.MockTwitchServer) (*clip.Service, *int) {
	t.Helper()

	webhookCalls := 0
	discordSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookCalls++
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(discordSrv.Close)

	announcer, err := discord.NewAnnouncer("wid", "wtok")
	if err != nil {
		t.Fatalf("NewAnnouncer() error = %v", err)
	}
	announcer.Session.Client = testutil.Client(discordSrv)

	svc := &clip.Service{
		Tokens: &twitchapi.OAuthClient{
			ClientID:     "cid",
			ClientSecret: "csecret",
			RefreshToken: "long-lived",
			HTTPClient:   testutil.Client(twitch.Server),
		},
		Clips: &twitchapi.HelixClient{
			ClientID:      "cid",
			BroadcasterID: "4242",
			HTTPClient:    testutil.Client(twitch.Server),
		},
		Discord:       announcer,
		AnnounceDelay: 10 * time.Millisecond,
	}
	return svc, &webhookCalls
}

func TestClipEndToEndSuccess(t *testing.T) {
	twitch := testutil.NewMockTwitchServer(t)
	twitch.MockTokenResponse("fresh-token")
	twitch.MockClipResponse("abc123")

	svc, webhookCalls := newIntegrationService(t, twitch)
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?user=alice")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	statusCode, body := decodeEnvelope(t, resp)
	if statusCode != 200 {
		t.Errorf("envelope statusCode = %d, want 200", statusCode)
	}
	if body != clip.StatusSuccess {
		t.Errorf("envelope body = %q, want %q", body, clip.StatusSuccess)
	}
	if *webhookCalls != 1 {
		t.Errorf("webhook executed %d times, want 1", *webhookCalls)
	}
}

func TestClipEndToEndOfflineChannel(t *testing.T) {
	twitch := testutil.NewMockTwitchServer(t)
	twitch.MockTokenResponse("fresh-token")
	twitch.MockClipError(http.StatusNotFound,
		`{"error":"Not Found","status":404,"message":"Clipping is not possible for an offline channel."}`)

	svc, webhookCalls := newIntegrationService(t, twitch)
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?user=alice")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	_, body := decodeEnvelope(t, resp)
	if body != clip.StatusChannelOffline {
		t.Errorf("envelope body = %q, want %q", body, clip.StatusChannelOffline)
	}
	if *webhookCalls != 0 {
		t.Errorf("webhook executed %d times, want 0 for offline channel", *webhookCalls)
	}
}

func TestClipEndToEndServiceUnavailable(t *testing.T) {
	twitch := testutil.NewMockTwitchServer(t)
	twitch.MockTokenResponse("fresh-token")
	twitch.MockClipError(http.StatusServiceUnavailable, `{"error":"Service Unavailable","status":503}`)

	svc, webhookCalls := newIntegrationService(t, twitch)
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?user=alice")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	_, body := decodeEnvelope(t, resp)
	if body != clip.StatusClipUnavailable {
		t.Errorf("envelope body = %q, want %q", body, clip.StatusClipUnavailable)
	}
	if *webhookCalls != 0 {
		t.Errorf("webhook executed %d times, want 0", *webhookCalls)
	}
}
