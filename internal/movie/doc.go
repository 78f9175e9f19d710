// Package movie defines the canonical entities produced by metadata
// resolution: movies, credits, collections, alternative titles, and the
// release-status state machine derived from release dates.
package movie
