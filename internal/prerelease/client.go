// Package prerelease checks a pre-release index for early release-group
// activity on a movie ahead of its official release.
package prerelease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marquee/internal/movie"
)

// Client queries the pre-release index.
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

// New creates a pre-release index client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("prerelease base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type releasesResponse struct {
	Count int `json:"count"`
}

// HasReleases reports whether the index has any release entries for the
// movie. Lookups key on the IMDB id when known, otherwise title and year.
func (c *Client) HasReleases(ctx context.Context, m *movie.Movie) (bool, error) {
	if m == nil {
		return false, errors.New("movie is nil")
	}
	endpoint, err := url.Parse(c.baseURL + "/releases")
	if err != nil {
		return false, fmt.Errorf("parse prerelease url: %w", err)
	}
	params := url.Values{}
	if m.ImdbID != "" {
		params.Set("imdb", m.ImdbID)
	} else {
		params.Set("title", m.CleanTitle)
		if m.Year > 0 {
			params.Set("year", strconv.Itoa(m.Year))
		}
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("prerelease index returned %d", resp.StatusCode)
	}

	var payload releasesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode prerelease response: %w", err)
	}
	return payload.Count > 0, nil
}
