package metadata

import "fmt"

// SearchError reports a failed title search along with the raw query so
// callers can surface the term that triggered the failure.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search for %q failed: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
