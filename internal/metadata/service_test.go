package metadata

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"marquee/internal/library"
	"marquee/internal/movie"
	"marquee/internal/tmdb"
)

type stubProvider struct {
	detail     *tmdb.MovieResource
	detailErr  error
	findResult *tmdb.MovieResult
	findErr    error
	searchHits []tmdb.MovieResult
	searchErr  error
	changed    map[int]struct{}

	searchTerm string
	searchYear string
}

func (p *stubProvider) MovieByID(ctx context.Context, tmdbID int) (*tmdb.MovieResource, error) {
	return p.detail, p.detailErr
}

func (p *stubProvider) FindByIMDBID(ctx context.Context, imdbID string) (*tmdb.MovieResult, error) {
	return p.findResult, p.findErr
}

func (p *stubProvider) Search(ctx context.Context, term, yearHint string) ([]tmdb.MovieResult, error) {
	p.searchTerm = term
	p.searchYear = yearHint
	return p.searchHits, p.searchErr
}

func (p *stubProvider) ChangedIDs(ctx context.Context, since time.Time) (map[int]struct{}, error) {
	return p.changed, nil
}

type stubLibrary struct {
	movies     []movie.Movie
	exclusions []library.Exclusion
}

func (l *stubLibrary) GetAllMovies(ctx context.Context) ([]movie.Movie, error) {
	return l.movies, nil
}

func (l *stubLibrary) FindByTmdbID(ctx context.Context, tmdbID int) (*movie.Movie, error) {
	for i := range l.movies {
		if l.movies[i].TmdbID == tmdbID {
			return &l.movies[i], nil
		}
	}
	return nil, nil
}

func (l *stubLibrary) GetAllExclusions(ctx context.Context) ([]library.Exclusion, error) {
	return l.exclusions, nil
}

type stubDiscoverer struct {
	candidates []tmdb.MovieResult
	err        error

	action     string
	tmdbIDs    string
	ignoredIDs string
}

func (d *stubDiscoverer) Candidates(ctx context.Context, action, tmdbIDs, ignoredIDs string) ([]tmdb.MovieResult, error) {
	d.action = action
	d.tmdbIDs = tmdbIDs
	d.ignoredIDs = ignoredIDs
	return d.candidates, d.err
}

type stubPreRelease struct {
	has bool
	err error
}

func (p *stubPreRelease) HasReleases(ctx context.Context, m *movie.Movie) (bool, error) {
	return p.has, p.err
}

func newTestService(provider *stubProvider, store Library, opts ...ServiceOption) *Service {
	mapper := NewMapper(fakeCovers{}, nil, WithClock(fixedClock("2000-01-01")))
	return NewService(provider, store, mapper, "en", nil, opts...)
}

func TestResolveByIDMapsDetail(t *testing.T) {
	provider := &stubProvider{detail: detailFixture()}
	svc := newTestService(provider, nil, WithPreReleaseChecker(&stubPreRelease{has: true}))

	mv, credits, err := svc.ResolveByID(context.Background(), 603)
	if err != nil {
		t.Fatalf("ResolveByID returned error: %v", err)
	}
	if mv == nil || mv.TmdbID != 603 {
		t.Fatalf("movie = %+v", mv)
	}
	if len(credits) == 0 {
		t.Fatal("expected credits")
	}
	if !mv.HasPreReleaseEntry {
		t.Fatal("pre-release flag not set from checker")
	}
}

func TestResolveByIDSoftErrorYieldsNoRecord(t *testing.T) {
	provider := &stubProvider{detail: nil}
	svc := newTestService(provider, nil)

	mv, credits, err := svc.ResolveByID(context.Background(), 603)
	if err != nil {
		t.Fatalf("soft error must not surface as error, got %v", err)
	}
	if mv != nil || credits != nil {
		t.Fatalf("expected no record, got %+v", mv)
	}
}

func TestResolveByIDPreReleaseFailureIsNonFatal(t *testing.T) {
	provider := &stubProvider{detail: detailFixture()}
	svc := newTestService(provider, nil, WithPreReleaseChecker(&stubPreRelease{err: errors.New("predb down")}))

	mv, _, err := svc.ResolveByID(context.Background(), 603)
	if err != nil {
		t.Fatalf("ResolveByID returned error: %v", err)
	}
	if mv.HasPreReleaseEntry {
		t.Fatal("flag should stay false when the checker fails")
	}
}

func TestSearchByQueryTextRoutesToProvider(t *testing.T) {
	provider := &stubProvider{searchHits: []tmdb.MovieResult{
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31"},
		{Title: "broken result"},
		{ID: 604, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15"},
	}}
	svc := newTestService(provider, nil)

	movies, err := svc.SearchByQuery(context.Background(), "Some.Movie.2017.1080p.BluRay")
	if err != nil {
		t.Fatalf("SearchByQuery returned error: %v", err)
	}
	if provider.searchTerm != "some+movie" || provider.searchYear != "2017" {
		t.Fatalf("provider got term=%q year=%q", provider.searchTerm, provider.searchYear)
	}
	if len(movies) != 2 {
		t.Fatalf("results = %d, want unmappable candidate skipped", len(movies))
	}
	if movies[0].TmdbID != 603 || movies[1].TmdbID != 604 {
		t.Fatalf("results = %+v", movies)
	}
}

func TestSearchByQueryReturnsLibraryMovie(t *testing.T) {
	stored := movie.Movie{TmdbID: 603, Title: "The Matrix", Path: "/movies/The Matrix (1999)", Monitored: true}
	provider := &stubProvider{searchHits: []tmdb.MovieResult{{ID: 603, Title: "The Matrix"}}}
	svc := newTestService(provider, &stubLibrary{movies: []movie.Movie{stored}})

	movies, err := svc.SearchByQuery(context.Background(), "the matrix")
	if err != nil {
		t.Fatalf("SearchByQuery returned error: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("results = %d", len(movies))
	}
	if movies[0].Path != stored.Path || !movies[0].Monitored {
		t.Fatalf("expected the stored movie back, got %+v", movies[0])
	}
}

func TestSearchByQueryYearOnlyTitle(t *testing.T) {
	provider := &stubProvider{searchHits: []tmdb.MovieResult{
		{ID: 530915, Title: "1917", ReleaseDate: "2019-12-25"},
	}}
	svc := newTestService(provider, nil)

	movies, err := svc.SearchByQuery(context.Background(), "1917")
	if err != nil {
		t.Fatalf("SearchByQuery returned error: %v", err)
	}
	if provider.searchTerm != "1917" || provider.searchYear != "" {
		t.Fatalf("provider got term=%q year=%q", provider.searchTerm, provider.searchYear)
	}
	if len(movies) != 1 || movies[0].TmdbID != 530915 {
		t.Fatalf("results = %+v", movies)
	}
}

func TestResolveByIMDBIDMapsFresh(t *testing.T) {
	stored := movie.Movie{TmdbID: 603, Title: "The Matrix", Path: "/movies/The Matrix (1999)", Monitored: true}
	provider := &stubProvider{findResult: &tmdb.MovieResult{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31"}}
	svc := newTestService(provider, &stubLibrary{movies: []movie.Movie{stored}})

	mv, err := svc.ResolveByIMDBID(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("ResolveByIMDBID returned error: %v", err)
	}
	if mv == nil || mv.TmdbID != 603 {
		t.Fatalf("movie = %+v", mv)
	}
	if mv.Path != "" || mv.Monitored {
		t.Fatalf("expected a freshly mapped movie, got the stored one: %+v", mv)
	}
}

func TestSearchByQueryMalformedIDYieldsEmpty(t *testing.T) {
	svc := newTestService(&stubProvider{}, nil)

	for _, query := range []string{"imdb: ", "tmdb:abc"} {
		movies, err := svc.SearchByQuery(context.Background(), query)
		if err != nil {
			t.Fatalf("SearchByQuery(%q) returned error: %v", query, err)
		}
		if len(movies) != 0 {
			t.Fatalf("SearchByQuery(%q) = %+v, want empty", query, movies)
		}
	}
}

func TestSearchByQueryUnknownIDYieldsEmpty(t *testing.T) {
	provider := &stubProvider{
		detailErr: fmt.Errorf("movie 42: %w", tmdb.ErrNotFound),
		findErr:   fmt.Errorf("imdb tt42: %w", tmdb.ErrNotFound),
	}
	svc := newTestService(provider, nil)

	for _, query := range []string{"tmdb:42", "imdb:tt42"} {
		movies, err := svc.SearchByQuery(context.Background(), query)
		if err != nil {
			t.Fatalf("SearchByQuery(%q) returned error: %v", query, err)
		}
		if len(movies) != 0 {
			t.Fatalf("SearchByQuery(%q) = %+v, want empty", query, movies)
		}
	}
}

func TestSearchByQueryWrapsTransportFailure(t *testing.T) {
	provider := &stubProvider{searchErr: fmt.Errorf("status 500: %w", tmdb.ErrTransport)}
	svc := newTestService(provider, nil)

	_, err := svc.SearchByQuery(context.Background(), "the matrix")
	var searchErr *SearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("error = %v, want *SearchError", err)
	}
	if searchErr.Query != "the matrix" {
		t.Fatalf("query = %q", searchErr.Query)
	}
	if !errors.Is(err, tmdb.ErrTransport) {
		t.Fatal("wrapped cause lost")
	}
}

func TestDiscoverFiltersLibraryAndExclusions(t *testing.T) {
	discoverer := &stubDiscoverer{candidates: []tmdb.MovieResult{
		{ID: 603, Title: "The Matrix"},
		{ID: 604, Title: "The Matrix Reloaded"},
		{ID: 605, Title: "The Matrix Revolutions"},
	}}
	store := &stubLibrary{
		movies:     []movie.Movie{{TmdbID: 603, Title: "The Matrix"}},
		exclusions: []library.Exclusion{{TmdbID: 605, Title: "The Matrix Revolutions"}},
	}
	svc := newTestService(&stubProvider{}, store, WithDiscoverer(discoverer))

	movies, err := svc.Discover(context.Background(), "upcoming")
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if discoverer.action != "upcoming" {
		t.Fatalf("action = %q", discoverer.action)
	}
	if discoverer.tmdbIDs != "603" || discoverer.ignoredIDs != "605" {
		t.Fatalf("ids sent = %q / %q", discoverer.tmdbIDs, discoverer.ignoredIDs)
	}
	if len(movies) != 1 || movies[0].TmdbID != 604 {
		t.Fatalf("survivors = %+v", movies)
	}
}

func TestDiscoverFailureYieldsEmpty(t *testing.T) {
	discoverer := &stubDiscoverer{err: errors.New("service down")}
	svc := newTestService(&stubProvider{}, &stubLibrary{}, WithDiscoverer(discoverer))

	movies, err := svc.Discover(context.Background(), "popular")
	if err != nil {
		t.Fatalf("discovery failure must not propagate, got %v", err)
	}
	if len(movies) != 0 {
		t.Fatalf("movies = %+v, want empty", movies)
	}
}

func TestResolveMovieCopiesOperationalFields(t *testing.T) {
	provider := &stubProvider{detail: detailFixture()}
	svc := newTestService(provider, nil)

	seed := &movie.Movie{
		TmdbID:              603,
		Title:               "Stale Title",
		Path:                "/movies/The Matrix (1999)",
		RootFolderPath:      "/movies",
		ProfileID:           4,
		Monitored:           true,
		MovieFileID:         99,
		MinimumAvailability: "released",
		Tags:                []int{1, 2},
	}

	resolved, err := svc.ResolveMovie(context.Background(), seed)
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a resolved movie")
	}
	if resolved.Title != "The Matrix" {
		t.Fatalf("title not refreshed: %q", resolved.Title)
	}
	if resolved.Path != seed.Path || resolved.RootFolderPath != seed.RootFolderPath {
		t.Fatalf("paths not copied: %+v", resolved)
	}
	if resolved.ProfileID != 4 || !resolved.Monitored || resolved.MovieFileID != 99 {
		t.Fatalf("operational fields not copied: %+v", resolved)
	}
	if resolved.MinimumAvailability != "released" || len(resolved.Tags) != 2 {
		t.Fatalf("operational fields not copied: %+v", resolved)
	}
}

func TestResolveMovieFallsBackToTitleSearch(t *testing.T) {
	provider := &stubProvider{searchHits: []tmdb.MovieResult{
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31"},
	}}
	svc := newTestService(provider, nil)

	resolved, err := svc.ResolveMovie(context.Background(), &movie.Movie{Title: "The Matrix", Year: 1999})
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if resolved == nil || resolved.TmdbID != 603 {
		t.Fatalf("resolved = %+v", resolved)
	}
	if provider.searchYear != "1999" {
		t.Fatalf("year hint = %q", provider.searchYear)
	}
}

func TestResolveMovieOmitsPlaceholderYear(t *testing.T) {
	provider := &stubProvider{searchHits: []tmdb.MovieResult{
		{ID: 771, Title: "Old Film"},
	}}
	svc := newTestService(provider, nil)

	if _, err := svc.ResolveMovie(context.Background(), &movie.Movie{Title: "Old Film", Year: 1880}); err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if provider.searchTerm != "old+film" {
		t.Fatalf("term = %q", provider.searchTerm)
	}
	if provider.searchYear != "" {
		t.Fatalf("year hint = %q, want placeholder year dropped", provider.searchYear)
	}
}

func TestResolveMovieUnresolvableYieldsNil(t *testing.T) {
	provider := &stubProvider{detailErr: fmt.Errorf("movie 42: %w", tmdb.ErrNotFound)}
	svc := newTestService(provider, nil)

	resolved, err := svc.ResolveMovie(context.Background(), &movie.Movie{TmdbID: 42})
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if resolved != nil {
		t.Fatalf("resolved = %+v, want nil", resolved)
	}
}
