package metadata

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"marquee/internal/language"
	"marquee/internal/logging"
	"marquee/internal/movie"
	"marquee/internal/textutil"
	"marquee/internal/tmdb"
)

// CoverResolver builds full image URLs from provider-relative paths.
type CoverResolver interface {
	Resolve(path string, imageType movie.ImageType) *movie.Image
}

// Mapper translates raw provider payloads into canonical movie entities.
type Mapper struct {
	covers CoverResolver
	logger *slog.Logger
	now    func() time.Time
}

// MapperOption customizes a Mapper.
type MapperOption func(*Mapper)

// WithClock overrides the time source used for release-status resolution.
func WithClock(now func() time.Time) MapperOption {
	return func(m *Mapper) {
		m.now = now
	}
}

// NewMapper returns a Mapper that resolves images through covers.
func NewMapper(covers CoverResolver, logger *slog.Logger, opts ...MapperOption) *Mapper {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Mapper{
		covers: covers,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapDetail translates a full detail payload. primaryLanguage is the
// two-letter code the provider was queried in; it controls which native
// alternative titles are kept. Malformed required fields fail the whole
// mapping rather than being skipped.
func (m *Mapper) MapDetail(raw *tmdb.MovieResource, primaryLanguage string) (*movie.Movie, []movie.Credit, error) {
	if raw == nil {
		return nil, nil, fmt.Errorf("map detail: nil payload")
	}
	if raw.ID <= 0 {
		return nil, nil, fmt.Errorf("map detail: missing provider id")
	}
	if strings.TrimSpace(raw.OriginalTitle) == "" {
		return nil, nil, fmt.Errorf("map detail: movie %d has no original title", raw.ID)
	}

	mv := &movie.Movie{
		TmdbID:           raw.ID,
		ImdbID:           raw.IMDBID,
		Title:            raw.OriginalTitle,
		SortTitle:        textutil.SortTitle(raw.OriginalTitle),
		CleanTitle:       textutil.CleanTitle(raw.OriginalTitle),
		Slug:             textutil.ToURLSlug(raw.OriginalTitle) + "-" + strconv.Itoa(raw.ID),
		Overview:         raw.Overview,
		Website:          raw.Homepage,
		OriginalLanguage: raw.OriginalLanguage,
		Runtime:          raw.Runtime,
		Ratings: movie.Ratings{
			Value: raw.VoteAverage,
			Votes: raw.VoteCount,
		},
	}

	if strings.TrimSpace(raw.ReleaseDate) != "" {
		inCinemas, err := time.Parse("2006-01-02", raw.ReleaseDate)
		if err != nil {
			return nil, nil, fmt.Errorf("map detail: movie %d release date: %w", raw.ID, err)
		}
		mv.InCinemas = &inCinemas
		mv.Year = inCinemas.Year()
	}

	for _, country := range raw.ReleaseDates.Results {
		for _, entry := range country.ReleaseDates {
			if entry.Type != tmdb.ReleaseTypePhysical && entry.Type != tmdb.ReleaseTypeDigital {
				continue
			}
			date, err := time.Parse("2006-01-02", entry.ReleaseDate)
			if err != nil {
				return nil, nil, fmt.Errorf("map detail: movie %d physical release date: %w", raw.ID, err)
			}
			// Keep the earliest physical date; ties keep the first seen.
			if mv.PhysicalRelease == nil || date.Before(*mv.PhysicalRelease) {
				mv.PhysicalRelease = &date
				mv.PhysicalReleaseNote = entry.Note
			}
		}
	}

	mv.Status = movie.ResolveStatus(m.now(), mv.InCinemas, mv.PhysicalRelease)

	m.appendImage(&mv.Images, raw.PosterPath, movie.ImagePoster)
	m.appendImage(&mv.Images, raw.BackdropPath, movie.ImageFanart)

	for _, genre := range raw.Genres {
		mv.Genres = append(mv.Genres, genre.Name)
	}

	for _, video := range raw.Videos.Results {
		if video.Type == "Trailer" && video.Site == "YouTube" && video.Key != "" {
			mv.TrailerID = video.Key
			break
		}
	}

	if len(raw.ProductionCompanies) > 0 {
		mv.Studio = raw.ProductionCompanies[0].Name
	}

	mv.AlternativeTitles = m.mapAlternativeTitles(raw, primaryLanguage)

	if raw.BelongsToCollection != nil {
		collection := &movie.Collection{
			TmdbID: raw.BelongsToCollection.ID,
			Name:   raw.BelongsToCollection.Name,
		}
		m.appendImage(&collection.Images, raw.BelongsToCollection.PosterPath, movie.ImagePoster)
		m.appendImage(&collection.Images, raw.BelongsToCollection.BackdropPath, movie.ImageFanart)
		mv.Collection = collection
	}

	credits := make([]movie.Credit, 0, len(raw.Credits.Cast)+len(raw.Credits.Crew))
	for _, cast := range raw.Credits.Cast {
		credits = append(credits, movie.Credit{
			Name:      cast.Name,
			TmdbID:    cast.ID,
			CreditID:  cast.CreditID,
			Type:      movie.CreditCast,
			Character: cast.Character,
			Order:     cast.Order,
			Headshot:  m.resolveCover(cast.ProfilePath, movie.ImageHeadshot),
		})
	}
	for _, crew := range raw.Credits.Crew {
		credits = append(credits, movie.Credit{
			Name:       crew.Name,
			TmdbID:     crew.ID,
			CreditID:   crew.CreditID,
			Type:       movie.CreditCrew,
			Department: crew.Department,
			Job:        crew.Job,
			Headshot:   m.resolveCover(crew.ProfilePath, movie.ImageHeadshot),
		})
	}

	return mv, credits, nil
}

// mapAlternativeTitles keeps native entries whose region matches the
// primary language (or "us", forced to English) and translation entries
// whose region resolves to a known language.
func (m *Mapper) mapAlternativeTitles(raw *tmdb.MovieResource, primaryLanguage string) []movie.AlternativeTitle {
	var out []movie.AlternativeTitle

	for _, alt := range raw.AlternativeTitles.Titles {
		region := strings.ToLower(alt.ISO3166)
		switch region {
		case primaryLanguage:
			lang, ok := language.Find(region)
			if !ok {
				lang = language.English
			}
			out = append(out, movie.AlternativeTitle{
				Title:    alt.Title,
				Source:   movie.SourceProviderNative,
				TmdbID:   raw.ID,
				Language: lang.Code,
			})
		case "us":
			out = append(out, movie.AlternativeTitle{
				Title:    alt.Title,
				Source:   movie.SourceProviderNative,
				TmdbID:   raw.ID,
				Language: language.English.Code,
			})
		}
	}

	for _, translation := range raw.Translations.Translations {
		lang, ok := language.Find(strings.ToLower(translation.ISO3166))
		if !ok || strings.TrimSpace(translation.Data.Title) == "" {
			continue
		}
		out = append(out, movie.AlternativeTitle{
			Title:    translation.Data.Title,
			Source:   movie.SourceTranslation,
			TmdbID:   raw.ID,
			Language: lang.Code,
		})
	}

	return out
}

// MapSearchResult translates a single search, find, or discovery result.
// A candidate that cannot be mapped yields nil so enumeration can skip
// it; the failure is logged, never propagated.
func (m *Mapper) MapSearchResult(raw tmdb.MovieResult) *movie.Movie {
	if raw.ID <= 0 || strings.TrimSpace(raw.Title) == "" {
		m.logger.Warn("skipping unmappable search result",
			logging.FieldTmdbID, raw.ID)
		return nil
	}

	mv := &movie.Movie{
		TmdbID:     raw.ID,
		Title:      raw.Title,
		SortTitle:  textutil.SortTitle(raw.Title),
		CleanTitle: textutil.CleanTitle(raw.Title),
		Slug:       textutil.ToURLSlug(raw.Title) + "-" + strconv.Itoa(raw.ID),
		Overview:   raw.Overview,
		Ratings: movie.Ratings{
			Value: raw.VoteAverage,
			Votes: raw.VoteCount,
		},
	}

	if date, ok := m.parseResultDate(raw.ID, "release date", raw.ReleaseDate); ok {
		mv.InCinemas = date
		mv.Year = date.Year()
	}
	if date, ok := m.parseResultDate(raw.ID, "physical release date", raw.PhysicalRelease); ok {
		mv.PhysicalRelease = date
		if strings.TrimSpace(raw.PhysicalReleaseNote) != "" {
			mv.PhysicalReleaseNote = raw.PhysicalReleaseNote
		}
	}

	if raw.TrailerKey != "" && raw.TrailerSite == "youtube" {
		mv.TrailerID = raw.TrailerKey
	}

	m.appendImage(&mv.Images, raw.PosterPath, movie.ImagePoster)

	mv.Status = movie.ResolveStatus(m.now(), mv.InCinemas, mv.PhysicalRelease)

	return mv
}

// parseResultDate leniently parses a date from a search-result payload.
// Bad dates are logged at debug level and treated as absent.
func (m *Mapper) parseResultDate(tmdbID int, field, value string) (*time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		m.logger.Debug("ignoring unparseable "+field,
			logging.FieldTmdbID, tmdbID,
			"value", value)
		return nil, false
	}
	return &date, true
}

func (m *Mapper) appendImage(images *[]movie.Image, path string, imageType movie.ImageType) {
	if img := m.resolveCover(path, imageType); img != nil {
		*images = append(*images, *img)
	}
}

func (m *Mapper) resolveCover(path string, imageType movie.ImageType) *movie.Image {
	if m.covers == nil || strings.TrimSpace(path) == "" {
		return nil
	}
	return m.covers.Resolve(path, imageType)
}
