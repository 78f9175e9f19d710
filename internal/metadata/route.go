package metadata

import (
	"strconv"
	"strings"
	"unicode"

	"marquee/internal/titles"
)

// RouteKind identifies how a search query should be executed.
type RouteKind int

const (
	// RouteNone means the query is malformed and should yield no results.
	RouteNone RouteKind = iota
	// RouteIMDBID routes to an exact lookup by IMDb identifier.
	RouteIMDBID
	// RouteTMDBID routes to an exact lookup by provider identifier.
	RouteTMDBID
	// RouteText routes to a fuzzy title search.
	RouteText
)

// SearchRoute is the routing decision for a raw search query. Exactly
// one of IMDBID, TMDBID, or Term/Year is populated depending on Kind.
type SearchRoute struct {
	Kind   RouteKind
	IMDBID string
	TMDBID int
	Term   string
	Year   string
}

var termReplacer = strings.NewReplacer("_", "+", " ", "+", ".", "+")

// ParseQuery classifies a raw search query. Release-style names are run
// through the title parser first; an embedded IMDb id wins outright.
// Explicit "imdb:"/"tt..." and "tmdb:" prefixes force exact lookups,
// with malformed ids routing to RouteNone rather than an error.
func ParseQuery(raw string) SearchRoute {
	lower := strings.ReplaceAll(strings.ToLower(raw), ".", "")
	year := ""

	if parsed := titles.Parse(raw); parsed != nil {
		if parsed.IMDBID != "" {
			return SearchRoute{Kind: RouteIMDBID, IMDBID: parsed.IMDBID}
		}
		// Adopt the parsed title only when the parser left one. A query
		// that is nothing but a year ("1917", "2012") must search as-is.
		if parsed.Title != "" && !strings.EqualFold(parsed.Title, raw) {
			lower = strings.ToLower(parsed.Title)
			if parsed.Year > 1800 {
				year = strconv.Itoa(parsed.Year)
			}
		}
	}

	lower = strings.TrimSpace(lower)
	lower = strings.TrimSuffix(lower, ", the")
	lower = strings.TrimSuffix(lower, ",the")
	lower = strings.TrimSpace(lower)

	if rest, ok := cutPrefix(lower, "imdb:", "imdbid:"); ok {
		id := strings.TrimSpace(rest)
		if !validIMDBID(id) {
			return SearchRoute{Kind: RouteNone}
		}
		return SearchRoute{Kind: RouteIMDBID, IMDBID: id}
	}

	if rest, ok := cutPrefix(lower, "tmdb:", "tmdbid:"); ok {
		id, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || id <= 0 {
			return SearchRoute{Kind: RouteNone}
		}
		return SearchRoute{Kind: RouteTMDBID, TMDBID: id}
	}

	return SearchRoute{Kind: RouteText, Term: termReplacer.Replace(lower), Year: year}
}

func cutPrefix(s string, prefixes ...string) (string, bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):], true
		}
	}
	return "", false
}

func validIMDBID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
