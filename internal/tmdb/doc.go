// Package tmdb provides the TMDB API client used for movie metadata
// resolution.
//
// It exposes detail lookup by TMDB id, find by IMDB id, text search, and
// the changed-ids feed. Responses are strongly typed raw provider records
// that the metadata mapper turns into canonical entities. Transport
// failures are classified into ErrNotFound and ErrTransport; soft errors
// embedded in an otherwise successful payload are logged and reported as
// an absent record. Options allow tests to supply custom HTTP clients,
// cooldown policy, or delay behaviour without modifying production code.
package tmdb
