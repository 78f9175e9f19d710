package metadata

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"marquee/internal/library"
	"marquee/internal/logging"
	"marquee/internal/movie"
	"marquee/internal/tmdb"
)

// Provider is the remote metadata source consumed by the Service. The
// tmdb.Client satisfies it.
type Provider interface {
	MovieByID(ctx context.Context, tmdbID int) (*tmdb.MovieResource, error)
	FindByIMDBID(ctx context.Context, imdbID string) (*tmdb.MovieResult, error)
	Search(ctx context.Context, term, yearHint string) ([]tmdb.MovieResult, error)
	ChangedIDs(ctx context.Context, since time.Time) (map[int]struct{}, error)
}

// Library is the slice of the local store the Service reads.
type Library interface {
	GetAllMovies(ctx context.Context) ([]movie.Movie, error)
	FindByTmdbID(ctx context.Context, tmdbID int) (*movie.Movie, error)
	GetAllExclusions(ctx context.Context) ([]library.Exclusion, error)
}

// PreReleaseChecker reports whether a movie already has scene releases.
type PreReleaseChecker interface {
	HasReleases(ctx context.Context, m *movie.Movie) (bool, error)
}

// Discoverer fetches recommendation candidates from the companion
// discovery service.
type Discoverer interface {
	Candidates(ctx context.Context, action, tmdbIDs, ignoredIDs string) ([]tmdb.MovieResult, error)
}

// Service resolves movie identity and metadata. All operations run on
// the caller's goroutine; the Service holds no mutable state of its own.
type Service struct {
	provider   Provider
	store      Library
	prerelease PreReleaseChecker
	discoverer Discoverer
	mapper     *Mapper
	language   string
	logger     *slog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithPreReleaseChecker wires the scene pre-release membership check.
func WithPreReleaseChecker(checker PreReleaseChecker) ServiceOption {
	return func(s *Service) {
		s.prerelease = checker
	}
}

// WithDiscoverer wires the discovery recommendation client.
func WithDiscoverer(discoverer Discoverer) ServiceOption {
	return func(s *Service) {
		s.discoverer = discoverer
	}
}

// NewService builds a Service. store may be nil when no local library is
// available; search results are then always freshly mapped.
func NewService(provider Provider, store Library, mapper *Mapper, primaryLanguage string, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	if primaryLanguage == "" {
		primaryLanguage = "en"
	}
	s := &Service{
		provider: provider,
		store:    store,
		mapper:   mapper,
		language: strings.ToLower(primaryLanguage),
		logger:   logging.NewComponentLogger(logger, "metadata"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveByID fetches and maps the full record for a provider id.
// It returns (nil, nil, nil) when the provider reports a soft error for
// the id, including records deleted upstream.
func (s *Service) ResolveByID(ctx context.Context, tmdbID int) (*movie.Movie, []movie.Credit, error) {
	return s.resolveByID(ctx, tmdbID, false)
}

func (s *Service) resolveByID(ctx context.Context, tmdbID int, hasPreReleaseEntry bool) (*movie.Movie, []movie.Credit, error) {
	raw, err := s.provider.MovieByID(ctx, tmdbID)
	if err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, nil
	}

	mv, credits, err := s.mapper.MapDetail(raw, s.language)
	if err != nil {
		return nil, nil, err
	}

	mv.HasPreReleaseEntry = hasPreReleaseEntry
	if !hasPreReleaseEntry && s.prerelease != nil {
		has, err := s.prerelease.HasReleases(ctx, mv)
		if err != nil {
			s.logger.Warn("pre-release lookup failed",
				logging.FieldTmdbID, tmdbID,
				logging.Error(err))
		} else {
			mv.HasPreReleaseEntry = has
		}
	}

	return mv, credits, nil
}

// ResolveByIMDBID resolves an IMDb id to a mapped movie via the
// provider's find endpoint. The result carries only search-level detail
// and is always mapped fresh; the stored-movie preference applies to
// search enumeration only.
func (s *Service) ResolveByIMDBID(ctx context.Context, imdbID string) (*movie.Movie, error) {
	result, err := s.provider.FindByIMDBID(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return s.mapper.MapSearchResult(*result), nil
}

// SearchByQuery routes a raw query and returns mapped candidates.
// Malformed id-prefixed queries and unknown ids yield an empty slice;
// transport failures surface as a *SearchError carrying the query.
func (s *Service) SearchByQuery(ctx context.Context, query string) ([]*movie.Movie, error) {
	logger := s.logger.With(logging.FieldRequestID, uuid.NewString(), logging.FieldQuery, query)

	route := ParseQuery(query)
	switch route.Kind {
	case RouteNone:
		logger.Debug("query is malformed, returning no results")
		return nil, nil

	case RouteIMDBID:
		mv, err := s.ResolveByIMDBID(ctx, route.IMDBID)
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, &SearchError{Query: query, Err: err}
		}
		if mv == nil {
			return nil, nil
		}
		return []*movie.Movie{mv}, nil

	case RouteTMDBID:
		mv, _, err := s.ResolveByID(ctx, route.TMDBID)
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, &SearchError{Query: query, Err: err}
		}
		if mv == nil {
			return nil, nil
		}
		return []*movie.Movie{mv}, nil
	}

	results, err := s.provider.Search(ctx, route.Term, route.Year)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}

	movies := make([]*movie.Movie, 0, len(results))
	for _, result := range results {
		if mv := s.mapSearchResult(ctx, result); mv != nil {
			movies = append(movies, mv)
		}
	}
	logger.Debug("search finished", "results", len(movies))
	return movies, nil
}

// mapSearchResult prefers the already-stored movie for a known id so
// operational fields survive; otherwise it maps the raw result.
func (s *Service) mapSearchResult(ctx context.Context, result tmdb.MovieResult) *movie.Movie {
	if s.store != nil && result.ID > 0 {
		existing, err := s.store.FindByTmdbID(ctx, result.ID)
		if err != nil {
			s.logger.Warn("library lookup failed",
				logging.FieldTmdbID, result.ID,
				logging.Error(err))
		} else if existing != nil {
			return existing
		}
	}
	return s.mapper.MapSearchResult(result)
}

// ListChangedIDs returns provider ids changed since the given time.
func (s *Service) ListChangedIDs(ctx context.Context, since time.Time) (map[int]struct{}, error) {
	return s.provider.ChangedIDs(ctx, since)
}

// Discover fetches recommendation candidates for an action, passing the
// current library and exclusion ids along, and drops any candidate the
// library already holds or excludes. Discovery is best-effort: failures
// of the discovery collaborator are logged and yield an empty slice.
// Errors reading the local store still propagate.
func (s *Service) Discover(ctx context.Context, action string) ([]*movie.Movie, error) {
	if s.discoverer == nil {
		return nil, nil
	}
	logger := s.logger.With(logging.FieldRequestID, uuid.NewString(), "action", action)

	libraryIDs := map[int]struct{}{}
	excludedIDs := map[int]struct{}{}
	var idList, exclusionList []string

	if s.store != nil {
		movies, err := s.store.GetAllMovies(ctx)
		if err != nil {
			return nil, err
		}
		for _, mv := range movies {
			libraryIDs[mv.TmdbID] = struct{}{}
			idList = append(idList, strconv.Itoa(mv.TmdbID))
		}

		exclusions, err := s.store.GetAllExclusions(ctx)
		if err != nil {
			return nil, err
		}
		for _, exclusion := range exclusions {
			excludedIDs[exclusion.TmdbID] = struct{}{}
			exclusionList = append(exclusionList, strconv.Itoa(exclusion.TmdbID))
		}
	}

	candidates, err := s.discoverer.Candidates(ctx, action, strings.Join(idList, ","), strings.Join(exclusionList, ","))
	if err != nil {
		logger.Error("discovery failed", logging.Error(err))
		return []*movie.Movie{}, nil
	}

	movies := make([]*movie.Movie, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := libraryIDs[candidate.ID]; ok {
			continue
		}
		if _, ok := excludedIDs[candidate.ID]; ok {
			continue
		}
		if mv := s.mapper.MapSearchResult(candidate); mv != nil {
			movies = append(movies, mv)
		}
	}
	logger.Debug("discovery finished", "candidates", len(candidates), "kept", len(movies))
	return movies, nil
}

// ResolveMovie re-resolves a movie the library already knows about,
// preferring provider id, then IMDb id, then a title search with a year
// hint. Operational fields of seed are copied onto the fresh record.
// An unresolvable seed yields (nil, nil) after logging.
func (s *Service) ResolveMovie(ctx context.Context, seed *movie.Movie) (*movie.Movie, error) {
	if seed == nil {
		return nil, nil
	}

	var resolved *movie.Movie
	switch {
	case seed.TmdbID > 0:
		mv, _, err := s.resolveByID(ctx, seed.TmdbID, seed.HasPreReleaseEntry)
		if err != nil {
			s.logger.Warn("refresh by provider id failed",
				logging.FieldTmdbID, seed.TmdbID,
				logging.Error(err))
			return nil, nil
		}
		resolved = mv

	case seed.ImdbID != "":
		mv, err := s.ResolveByIMDBID(ctx, seed.ImdbID)
		if err != nil {
			s.logger.Warn("refresh by imdb id failed",
				"imdb_id", seed.ImdbID,
				logging.Error(err))
			return nil, nil
		}
		resolved = mv

	default:
		query := seed.Title
		// Placeholder years below the cutoff never reach the query term.
		if seed.Year > 1900 {
			query += " " + strconv.Itoa(seed.Year)
		}
		results, err := s.SearchByQuery(ctx, query)
		if err != nil {
			s.logger.Warn("refresh by title search failed",
				logging.FieldQuery, query,
				logging.Error(err))
			return nil, nil
		}
		if len(results) > 0 {
			resolved = results[0]
		}
	}

	if resolved == nil {
		s.logger.Warn("movie could not be resolved",
			"title", seed.Title,
			logging.FieldTmdbID, seed.TmdbID)
		return nil, nil
	}

	resolved.Path = seed.Path
	resolved.RootFolderPath = seed.RootFolderPath
	resolved.ProfileID = seed.ProfileID
	resolved.Monitored = seed.Monitored
	resolved.MovieFileID = seed.MovieFileID
	resolved.MinimumAvailability = seed.MinimumAvailability
	if seed.Tags != nil {
		resolved.Tags = seed.Tags
	}

	return resolved, nil
}
