// Package textutil provides title normalization helpers shared by the
// metadata mapper and the query router.
//
// The primary use cases are:
//   - Building URL-safe slugs from display titles
//   - Producing clean and sortable variants of a title for matching
package textutil
