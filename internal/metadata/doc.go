// Package metadata resolves movie identity and metadata against the
// remote provider and maps raw provider records into canonical entities.
//
// The Service is the composition root: a query router decides between
// exact-id lookup and fuzzy title search, the provider client fetches
// raw records, and the mapper turns them into movie.Movie values using
// the cover resolver and release-status rules. Discovery results are
// filtered against the local library and exclusion list before mapping.
package metadata
