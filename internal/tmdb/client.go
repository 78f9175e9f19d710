package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marquee/internal/logging"
)

// quotaHeader is the remaining-request count the provider attaches to
// detail and find responses.
const quotaHeader = "X-RateLimit-Remaining"

// CooldownPolicy controls the courtesy throttle applied when the
// provider reports low remaining quota. The sleep happens after a
// successful response, so the next call benefits.
type CooldownPolicy struct {
	Threshold int
	Wait      time.Duration
}

// DefaultCooldown mirrors the provider's documented request windows.
var DefaultCooldown = CooldownPolicy{Threshold: 5, Wait: 5 * time.Second}

// Client provides access to the TMDB API for metadata resolution.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	cooldown   CooldownPolicy
	delay      func(ctx context.Context, d time.Duration) error
	logger     *slog.Logger
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

// WithLogger attaches a logger for soft-error and cooldown diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "tmdb")
		}
	}
}

// WithCooldown overrides the rate-limit courtesy policy.
func WithCooldown(policy CooldownPolicy) Option {
	return func(c *Client) {
		if policy.Threshold > 0 && policy.Wait > 0 {
			c.cooldown = policy
		}
	}
}

// WithDelayFunc overrides the delay primitive used for the cooldown.
// Tests use it to observe sleeps without waiting.
func WithDelayFunc(delay func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if delay != nil {
			c.delay = delay
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.ToLower(strings.TrimSpace(language)),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cooldown:   DefaultCooldown,
		delay:      sleepContext,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MovieByID fetches the full detail record for a TMDB movie id. A nil
// resource with a nil error means the provider reported a soft error and
// no record exists.
func (c *Client) MovieByID(ctx context.Context, tmdbID int) (*MovieResource, error) {
	if tmdbID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/movie/%d", c.baseURL, tmdbID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "alternative_titles,release_dates,videos,credits,translations")
	params.Set("language", strings.ToUpper(c.language))
	endpoint.RawQuery = params.Encode()

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: tmdb id %d", ErrNotFound, tmdbID)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	var payload MovieResource
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode movie detail: %v", ErrTransport, err)
	}

	if err := c.applyCooldown(ctx, resp.Header); err != nil {
		return nil, err
	}

	if payload.StatusMessage != "" {
		if payload.StatusCode == statusCodeDeleted {
			c.logger.Warn("movie was deleted from the provider",
				slog.Int(logging.FieldTmdbID, tmdbID))
			return nil, nil
		}
		c.logger.Warn("provider reported a soft error",
			slog.Int(logging.FieldTmdbID, tmdbID),
			slog.Int("status_code", payload.StatusCode),
			slog.String("status_message", payload.StatusMessage))
		return nil, nil
	}

	return &payload, nil
}

// FindByIMDBID resolves an IMDB id to the provider's movie record. An
// empty result list reports ErrNotFound.
func (c *Client) FindByIMDBID(ctx context.Context, imdbID string) (*MovieResult, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/find/%s", c.baseURL, url.PathEscape(imdbID)))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("external_source", "imdb_id")
	endpoint.RawQuery = params.Encode()

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: imdb id %s", ErrNotFound, imdbID)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	var payload FindResource
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode find response: %v", ErrTransport, err)
	}

	if err := c.applyCooldown(ctx, resp.Header); err != nil {
		return nil, err
	}

	if len(payload.MovieResults) == 0 {
		return nil, fmt.Errorf("%w: imdb id %s", ErrNotFound, imdbID)
	}

	result := payload.MovieResults[0]
	return &result, nil
}

// Search performs a text search. yearHint may be empty. Search responses
// carry no quota header, so no cooldown applies.
func (c *Client) Search(ctx context.Context, term, yearHint string) ([]MovieResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("search term must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/movie")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", term)
	params.Set("year", yearHint)
	params.Set("include_adult", "false")
	endpoint.RawQuery = params.Encode()

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: search %q", ErrNotFound, term)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	var payload SearchResource
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrTransport, err)
	}
	return payload.Results, nil
}

// ChangedIDs lists the provider ids changed since the given time.
func (c *Client) ChangedIDs(ctx context.Context, since time.Time) (map[int]struct{}, error) {
	endpoint, err := url.Parse(c.baseURL + "/movie/changes")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("start_date", since.UTC().Format(time.RFC3339))
	endpoint.RawQuery = params.Encode()

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := classify(resp); err != nil {
		return nil, err
	}

	var payload changesResource
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode changes response: %v", ErrTransport, err)
	}

	ids := make(map[int]struct{}, len(payload.Results))
	for _, change := range payload.Results {
		ids[change.ID] = struct{}{}
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context, endpoint *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request (latency=%v): %v", ErrTransport, latency, err)
	}
	return resp, nil
}

// classify turns non-success statuses and unexpected content types into
// ErrTransport. A wrong content type is a transport error even on 200.
func classify(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
	mediaType, attrs, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("%w: parse content type: %v", ErrTransport, err)
	}
	if mediaType != "application/json" {
		return fmt.Errorf("%w: unexpected content type %q", ErrTransport, mediaType)
	}
	if charset, ok := attrs["charset"]; ok && !strings.EqualFold(charset, "utf-8") {
		return fmt.Errorf("%w: unexpected charset %q", ErrTransport, charset)
	}
	return nil
}

// applyCooldown sleeps when the provider reports Threshold or fewer
// remaining requests. The current call's result is unaffected; racing
// callers may both sleep or neither, which is accepted best-effort.
func (c *Client) applyCooldown(ctx context.Context, header http.Header) error {
	value := strings.TrimSpace(header.Get(quotaHeader))
	if value == "" {
		return nil
	}
	remaining, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	if remaining > c.cooldown.Threshold {
		return nil
	}
	c.logger.Debug("provider quota low, cooling down",
		slog.Int("remaining", remaining),
		slog.Duration("wait", c.cooldown.Wait))
	return c.delay(ctx, c.cooldown.Wait)
}
