package tmdb

import "errors"

var (
	// ErrNotFound indicates the id or external id has no corresponding
	// record. Callers should treat the record as absent, not retry.
	ErrNotFound = errors.New("movie not found")

	// ErrTransport indicates a non-success status, an unexpected response
	// content type, or a network-level failure. Callers should surface the
	// provider as unavailable.
	ErrTransport = errors.New("provider transport error")
)
