package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marquee/internal/tmdb"
)

const jsonContentType = "application/json; charset=utf-8"

func newClient(t *testing.T, baseURL string, opts ...tmdb.Option) *tmdb.Client {
	t.Helper()
	client, err := tmdb.New("key", baseURL, "en", opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestMovieByIDSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("api_key") != "key" {
			t.Fatalf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if query.Get("append_to_response") != "alternative_titles,release_dates,videos,credits,translations" {
			t.Fatalf("unexpected append_to_response: %q", query.Get("append_to_response"))
		}
		if query.Get("language") != "EN" {
			t.Fatalf("unexpected language: %q", query.Get("language"))
		}
		w.Header().Set("Content-Type", jsonContentType)
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","imdb_id":"tt0133093"}`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	resource, err := client.MovieByID(context.Background(), 603)
	if err != nil {
		t.Fatalf("MovieByID returned error: %v", err)
	}
	if resource == nil || resource.ID != 603 || resource.IMDBID != "tt0133093" {
		t.Fatalf("unexpected resource: %#v", resource)
	}
}

func TestMovieByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	_, err := client.MovieByID(context.Background(), 42)
	if !errors.Is(err, tmdb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMovieByIDTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	_, err := client.MovieByID(context.Background(), 42)
	if !errors.Is(err, tmdb.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestMovieByIDRejectsWrongContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	_, err := client.MovieByID(context.Background(), 42)
	if !errors.Is(err, tmdb.ErrTransport) {
		t.Fatalf("expected ErrTransport for html response, got %v", err)
	}
}

func TestMovieByIDSoftError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonContentType)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	resource, err := client.MovieByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("soft error should not return an error, got %v", err)
	}
	if resource != nil {
		t.Fatalf("expected nil resource for soft error, got %#v", resource)
	}
}

func TestMovieByIDCooldownTrigger(t *testing.T) {
	remaining := "5"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonContentType)
		w.Header().Set("X-RateLimit-Remaining", remaining)
		_, _ = w.Write([]byte(`{"id":42,"title":"Example"}`))
	}))
	t.Cleanup(server.Close)

	var slept []time.Duration
	client := newClient(t, server.URL,
		tmdb.WithCooldown(tmdb.CooldownPolicy{Threshold: 5, Wait: 5 * time.Second}),
		tmdb.WithDelayFunc(func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}))

	if _, err := client.MovieByID(context.Background(), 42); err != nil {
		t.Fatalf("MovieByID returned error: %v", err)
	}
	if len(slept) != 1 || slept[0] != 5*time.Second {
		t.Fatalf("expected one 5s cooldown, got %v", slept)
	}

	// Remaining above the threshold does not sleep.
	slept = nil
	remaining = "6"
	if _, err := client.MovieByID(context.Background(), 42); err != nil {
		t.Fatalf("MovieByID returned error: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("expected no cooldown, got %v", slept)
	}
}

func TestFindByIMDBIDSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/tt0133093" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("external_source") != "imdb_id" {
			t.Fatalf("expected external_source, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", jsonContentType)
		_, _ = w.Write([]byte(`{"movie_results":[{"id":603,"title":"The Matrix"}]}`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	result, err := client.FindByIMDBID(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("FindByIMDBID returned error: %v", err)
	}
	if result.ID != 603 {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestFindByIMDBIDEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonContentType)
		_, _ = w.Write([]byte(`{"movie_results":[]}`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	_, err := client.FindByIMDBID(context.Background(), "tt9999999")
	if !errors.Is(err, tmdb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty results, got %v", err)
	}
}

func TestSearchSuccessWithoutCooldown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("query") != "the+matrix" {
			t.Fatalf("unexpected query: %q", query.Get("query"))
		}
		if query.Get("year") != "1999" {
			t.Fatalf("unexpected year: %q", query.Get("year"))
		}
		if query.Get("include_adult") != "false" {
			t.Fatalf("expected include_adult=false")
		}
		w.Header().Set("Content-Type", jsonContentType)
		w.Header().Set("X-RateLimit-Remaining", "1")
		_, _ = w.Write([]byte(`{"results":[{"id":603,"title":"The Matrix"}]}`))
	}))
	t.Cleanup(server.Close)

	var slept int
	client := newClient(t, server.URL, tmdb.WithDelayFunc(func(ctx context.Context, d time.Duration) error {
		slept++
		return nil
	}))

	results, err := client.Search(context.Background(), "the+matrix", "1999")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 603 {
		t.Fatalf("unexpected results: %#v", results)
	}
	if slept != 0 {
		t.Fatal("search must never apply the quota cooldown")
	}
}

func TestChangedIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/changes" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("start_date") == "" {
			t.Fatal("expected start_date parameter")
		}
		w.Header().Set("Content-Type", jsonContentType)
		_, _ = w.Write([]byte(`{"results":[{"id":1},{"id":2},{"id":2}]}`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL)
	ids, err := client.ChangedIDs(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ChangedIDs returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 unique ids, got %v", ids)
	}
	if _, ok := ids[1]; !ok {
		t.Fatalf("expected id 1 in %v", ids)
	}
}
