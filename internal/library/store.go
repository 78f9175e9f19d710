package library

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"marquee/internal/movie"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users must recreate the database afterwards.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Exclusion is a movie the user never wants suggested again.
type Exclusion struct {
	TmdbID int
	Title  string
	Year   int
}

// Store manages library persistence backed by SQLite. An advisory file
// lock guards the database against concurrent marquee processes.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the library database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure database directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, errors.New("library database is locked by another marquee process")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the advisory lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return err
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Upsert inserts or replaces a movie's library record.
func (s *Store) Upsert(ctx context.Context, m *movie.Movie) error {
	if m == nil || m.TmdbID <= 0 {
		return errors.New("movie with a provider id required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO movies (
            tmdb_id, imdb_id, title, sort_title, clean_title, slug, overview,
            year, status, in_cinemas, physical_release, monitored, path,
            profile_id, movie_file_id, minimum_availability, added_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(tmdb_id) DO UPDATE SET
            imdb_id = excluded.imdb_id,
            title = excluded.title,
            sort_title = excluded.sort_title,
            clean_title = excluded.clean_title,
            slug = excluded.slug,
            overview = excluded.overview,
            year = excluded.year,
            status = excluded.status,
            in_cinemas = excluded.in_cinemas,
            physical_release = excluded.physical_release,
            monitored = excluded.monitored,
            path = excluded.path,
            profile_id = excluded.profile_id,
            movie_file_id = excluded.movie_file_id,
            minimum_availability = excluded.minimum_availability,
            updated_at = excluded.updated_at`,
		m.TmdbID,
		nullableString(m.ImdbID),
		m.Title,
		m.SortTitle,
		m.CleanTitle,
		m.Slug,
		m.Overview,
		m.Year,
		string(m.Status),
		nullableTime(m.InCinemas),
		nullableTime(m.PhysicalRelease),
		m.Monitored,
		m.Path,
		m.ProfileID,
		m.MovieFileID,
		m.MinimumAvailability,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}
	return nil
}

// FindByTmdbID returns the stored movie for a provider id, or nil when
// the library does not have it.
func (s *Store) FindByTmdbID(ctx context.Context, tmdbID int) (*movie.Movie, error) {
	row := s.db.QueryRowContext(ctx, selectMovies+" WHERE tmdb_id = ?", tmdbID)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", tmdbID, err)
	}
	return m, nil
}

// GetAllMovies lists every movie in the library ordered by sort title.
func (s *Store) GetAllMovies(ctx context.Context) ([]movie.Movie, error) {
	rows, err := s.db.QueryContext(ctx, selectMovies+" ORDER BY sort_title")
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []movie.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// Remove deletes a movie from the library.
func (s *Store) Remove(ctx context.Context, tmdbID int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM movies WHERE tmdb_id = ?", tmdbID); err != nil {
		return fmt.Errorf("remove movie %d: %w", tmdbID, err)
	}
	return nil
}

// AddExclusion records a movie the user never wants suggested.
func (s *Store) AddExclusion(ctx context.Context, exclusion Exclusion) error {
	if exclusion.TmdbID <= 0 {
		return errors.New("exclusion requires a provider id")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO exclusions (tmdb_id, title, year, added_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(tmdb_id) DO UPDATE SET title = excluded.title, year = excluded.year`,
		exclusion.TmdbID, exclusion.Title, exclusion.Year, now)
	if err != nil {
		return fmt.Errorf("add exclusion: %w", err)
	}
	return nil
}

// RemoveExclusion drops an exclusion.
func (s *Store) RemoveExclusion(ctx context.Context, tmdbID int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM exclusions WHERE tmdb_id = ?", tmdbID); err != nil {
		return fmt.Errorf("remove exclusion %d: %w", tmdbID, err)
	}
	return nil
}

// GetAllExclusions lists every exclusion.
func (s *Store) GetAllExclusions(ctx context.Context) ([]Exclusion, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tmdb_id, title, year FROM exclusions ORDER BY tmdb_id")
	if err != nil {
		return nil, fmt.Errorf("list exclusions: %w", err)
	}
	defer rows.Close()

	var exclusions []Exclusion
	for rows.Next() {
		var exclusion Exclusion
		if err := rows.Scan(&exclusion.TmdbID, &exclusion.Title, &exclusion.Year); err != nil {
			return nil, fmt.Errorf("scan exclusion: %w", err)
		}
		exclusions = append(exclusions, exclusion)
	}
	return exclusions, rows.Err()
}

const selectMovies = `
    SELECT tmdb_id, imdb_id, title, sort_title, clean_title, slug, overview,
           year, status, in_cinemas, physical_release, monitored, path,
           profile_id, movie_file_id, minimum_availability
    FROM movies`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*movie.Movie, error) {
	var (
		m               movie.Movie
		imdbID          sql.NullString
		status          string
		inCinemas       sql.NullString
		physicalRelease sql.NullString
	)
	err := row.Scan(
		&m.TmdbID,
		&imdbID,
		&m.Title,
		&m.SortTitle,
		&m.CleanTitle,
		&m.Slug,
		&m.Overview,
		&m.Year,
		&status,
		&inCinemas,
		&physicalRelease,
		&m.Monitored,
		&m.Path,
		&m.ProfileID,
		&m.MovieFileID,
		&m.MinimumAvailability,
	)
	if err != nil {
		return nil, err
	}
	m.ImdbID = imdbID.String
	m.Status = movie.Status(status)
	m.InCinemas = parseStoredTime(inCinemas)
	m.PhysicalRelease = parseStoredTime(physicalRelease)
	return &m, nil
}

func parseStoredTime(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value.String)
	if err != nil {
		return nil
	}
	return &parsed
}

func nullableString(value string) driver.Value {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) driver.Value {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}
