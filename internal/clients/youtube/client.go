// Package youtube provides a minimal client for updating a video's
// title via the YouTube Data API v3. Authentication uses a pre-issued
// OAuth refresh token; the access token is re-minted on every call
// since title updates happen at most a few times per hour.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingCredentials is returned before any network call when the
// OAuth configuration is incomplete.
var ErrMissingCredentials = errors.New("youtube credentials not configured")

// Config holds the OAuth credentials for the YouTube Data API.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Client for the YouTube Data API v3
type Client struct {
	cfg      Config
	tokenURL string
	apiURL   string
	client   *http.Client
	log      zerolog.Logger
}

// NewClient creates a new YouTube client. Credentials are validated at
// call time, not here, so the rest of the application can run without
// them.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:      cfg,
		tokenURL: "https://oauth2.googleapis.com/token",
		apiURL:   "https://www.googleapis.com/youtube/v3",
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      log.With().Str("client", "youtube").Logger(),
	}
}

type snippet struct {
	Title      string `json:"title"`
	CategoryID string `json:"categoryId"`
}

// UpdateTitle sets a new title on the video, preserving the rest of
// the snippet. Fails fast with ErrMissingCredentials when OAuth
// settings are absent; any non-success response from Google is an
// error carrying a body snippet for diagnostics.
func (c *Client) UpdateTitle(ctx context.Context, videoID, title string) error {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" || c.cfg.RefreshToken == "" {
		return ErrMissingCredentials
	}

	token, err := c.refreshAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh access token: %w", err)
	}

	// The update endpoint replaces the whole snippet, so fetch the
	// current one first to keep categoryId intact.
	current, err := c.getSnippet(ctx, token, videoID)
	if err != nil {
		return fmt.Errorf("failed to load video snippet: %w", err)
	}

	current.Title = title

	body, err := json.Marshal(map[string]interface{}{
		"id":      videoID,
		"snippet": current,
	})
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.apiURL+"/videos?part=snippet", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("video update returned status %d: %s", resp.StatusCode, readBodySnippet(resp.Body))
	}

	c.log.Info().Str("video_id", videoID).Str("title", title).Msg("Video title updated")
	return nil
}

// refreshAccessToken exchanges the refresh token for a short-lived
// access token. Single attempt, like every other outbound call here.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", c.cfg.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, readBodySnippet(resp.Body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	return result.AccessToken, nil
}

// getSnippet fetches the video's current snippet.
func (c *Client) getSnippet(ctx context.Context, token, videoID string) (*snippet, error) {
	reqURL := c.apiURL + "/videos?part=snippet&id=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video lookup returned status %d: %s", resp.StatusCode, readBodySnippet(resp.Body))
	}

	var result struct {
		Items []struct {
			Snippet snippet `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse video response: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	return &result.Items[0].Snippet, nil
}

// readBodySnippet returns up to 512 bytes of the response body for
// error messages.
func readBodySnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
