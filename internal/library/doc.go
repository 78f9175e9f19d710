// Package library persists the local movie library and the discovery
// exclusion list in SQLite. The store is the source of truth the
// metadata service consults when filtering search and discovery results
// against movies the user already has or never wants suggested.
package library
