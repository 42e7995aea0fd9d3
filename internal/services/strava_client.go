package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	stravaAuthorizeURL   = "https://www.strava.com/oauth/authorize"
	stravaTokenURL       = "https://www.strava.com/oauth/token"
	stravaDeauthorizeURL = "https://www.strava.com/oauth/deauthorize"
	stravaActivitiesURL  = "https://www.strava.com/api/v3/athlete/activities"
)

type StravaTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type StravaActivity struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	DistanceMeters    float64   `json:"distance"`
	MovingTimeSeconds int       `json:"moving_time"`
	StartDate         time.Time `json:"start_date"`
}

// StravaClient covers the slice of the Strava API the sync flow needs: the
// OAuth token endpoints and the activity list.
type StravaClient interface {
	ExchangeCode(ctx context.Context, code string) (*StravaTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*StravaTokens, error)
	ListActivities(ctx context.Context, accessToken string, perPage int) ([]StravaActivity, error)
	Deauthorize(ctx context.Context, accessToken string) error
}

type HTTPStravaClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewHTTPStravaClient(clientID, clientSecret string) *HTTPStravaClient {
	return &HTTPStravaClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPStravaClient) ExchangeCode(ctx context.Context, code string) (*StravaTokens, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	return c.tokenRequest(ctx, form)
}

func (c *HTTPStravaClient) RefreshToken(ctx context.Context, refreshToken string) (*StravaTokens, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")
	return c.tokenRequest(ctx, form)
}

func (c *HTTPStravaClient) tokenRequest(ctx context.Context, form url.Values) (*StravaTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stravaTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: token exchange status %d: %s", ErrUpstreamAuth, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresAt    int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access token", ErrUpstreamAuth)
	}

	return &StravaTokens{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    time.Unix(payload.ExpiresAt, 0),
	}, nil
}

func (c *HTTPStravaClient) ListActivities(ctx context.Context, accessToken string, perPage int) ([]StravaActivity, error) {
	listURL := stravaActivitiesURL + "?per_page=" + strconv.Itoa(perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build activities request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: activities request unauthorized", ErrUpstreamAuth)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: activities status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var activities []StravaActivity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return activities, nil
}

func (c *HTTPStravaClient) Deauthorize(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stravaDeauthorizeURL, nil)
	if err != nil {
		return fmt.Errorf("build deauthorize request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deauthorize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: deauthorize status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// AuthorizeURL builds the redirect target that starts the OAuth dance. The
// user id rides along as the opaque state parameter and comes back on the
// callback.
func AuthorizeURL(clientID, redirectURI, state string) string {
	query := url.Values{}
	query.Set("client_id", clientID)
	query.Set("response_type", "code")
	query.Set("redirect_uri", redirectURI)
	query.Set("approval_prompt", "auto")
	query.Set("scope", "read,activity:read")
	query.Set("state", state)
	return stravaAuthorizeURL + "?" + query.Encode()
}
