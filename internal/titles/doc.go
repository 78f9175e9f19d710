// Package titles parses release-style names into a movie title plus any
// year and IMDB id hints they carry. The query router runs this pass
// before deciding between id lookup and text search.
package titles
