package twitchapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
)

const tokenURL = "https://id.twitch.tv/oauth2/token"

// RefreshResult represents the response from a refresh_token grant.
type RefreshResult struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	Scope        []string `json:"scope"`
	ExpiresIn    int      `json:"expires_in"`
}

// OAuthClient exchanges a long-lived refresh token for short-lived access
// tokens. Tokens are not cached: each call performs a fresh grant, so one
// clip request consumes exactly one token.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	HTTPClient   *http.Client
}

func (oc *OAuthClient) http() *http.Client {
	if oc.HTTPClient != nil {
		return oc.HTTPClient
	}
	return http.DefaultClient
}

// AccessToken performs a refresh_token grant and returns the new access token.
func (oc *OAuthClient) AccessToken(ctx context.Context) (string, error) {
	if oc.ClientID == "" || oc.ClientSecret == "" || oc.RefreshToken == "" {
		return "", errors.New("missing clientID/clientSecret/refreshToken")
	}
	v := url.Values{}
	v.Set("grant_type", "refresh_token")
	v.Set("refresh_token", oc.RefreshToken)
	v.Set("client_id", oc.ClientID)
	v.Set("client_secret", oc.ClientSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL+"?"+v.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := oc.http().Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", readHTTPError(resp)
	}
	var res RefreshResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", errors.New("empty access_token in twitch response")
	}
	return res.AccessToken, nil
}
