// Package discovery talks to the companion recommendation service that
// suggests new movies based on the existing library.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marquee/internal/tmdb"
)

// Error is the discovery service's domain failure, carrying the action
// that was requested.
type Error struct {
	Action string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("discovery %q failed: %v", e.Action, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client queries the discovery service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a discovery client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("discovery base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Candidates asks the service for recommendations. tmdbIDs and
// ignoredIDs are comma-joined id lists describing the caller's library
// and exclusion set; the service uses them to seed and pre-filter its
// suggestions.
func (c *Client) Candidates(ctx context.Context, action, tmdbIDs, ignoredIDs string) ([]tmdb.MovieResult, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, &Error{Action: action, Err: errors.New("action must not be empty")}
	}

	form := url.Values{}
	form.Set("tmdbIds", tmdbIDs)
	form.Set("ignoredIds", ignoredIDs)

	endpoint := fmt.Sprintf("%s/discovery/%s", c.baseURL, url.PathEscape(action))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Action: action, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Action: action, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Action: action, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var results []tmdb.MovieResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &Error{Action: action, Err: fmt.Errorf("decode response: %w", err)}
	}
	return results, nil
}
