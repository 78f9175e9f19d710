package titles

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseResult holds the metadata extracted from a release-style name.
type ParseResult struct {
	Title  string
	Year   int
	IMDBID string
}

var (
	// imdbPattern matches an inline IMDB id anywhere in the name.
	imdbPattern = regexp.MustCompile(`(?i)\b(tt\d{6,8})\b`)
	// yearPattern requires delimiters so episode numbers and dates do not
	// match. Matches (2020) [2020] .2020. -2020- and a bare trailing year.
	yearPattern = regexp.MustCompile(`(?:^|[\(\[\.\-_\s])([12]\d{3})(?:[\)\]\.\-_\s]|$)`)
)

// garbageTokens are release-name fragments that never belong to a title.
// Everything from the first garbage token onward is discarded.
var garbageTokens = map[string]struct{}{}

func init() {
	for _, token := range []string{
		"480p", "576p", "720p", "1080p", "2160p", "4k", "uhd",
		"x264", "x265", "h264", "h265", "hevc", "avc", "xvid", "divx", "av1", "10bit",
		"aac", "ac3", "dts", "truehd", "atmos", "flac", "eac3",
		"bluray", "blu-ray", "bdrip", "brrip", "bdremux", "remux", "hdrip",
		"dvd", "dvdrip", "dvdscr", "webrip", "web-dl", "webdl", "web", "hdtv", "cam", "telesync",
		"proper", "repack", "internal", "limited", "extended", "unrated", "remastered", "multi", "subbed",
	} {
		garbageTokens[token] = struct{}{}
	}
}

var titleCaser = cases.Title(language.Und)

// Parse extracts a cleaned title and optional year and IMDB id from a
// release-style name. It returns nil when the input is blank.
func Parse(raw string) *ParseResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	result := &ParseResult{}

	if match := imdbPattern.FindStringSubmatch(trimmed); match != nil {
		result.IMDBID = strings.ToLower(match[1])
	}

	working := trimmed
	if match := yearPattern.FindStringSubmatchIndex(working); match != nil {
		year, err := strconv.Atoi(working[match[2]:match[3]])
		if err == nil {
			result.Year = year
			// The title is whatever precedes the year.
			working = working[:match[0]]
		}
	}

	result.Title = cleanTitle(working)
	if result.Title == "" && result.IMDBID == "" && result.Year == 0 {
		return nil
	}
	return result
}

// cleanTitle splits on separator runs, stops at the first garbage token,
// and rejoins the remainder in title case.
func cleanTitle(value string) string {
	var tokens []string
	for _, token := range splitTokens(value) {
		if _, garbage := garbageTokens[strings.ToLower(token)]; garbage {
			break
		}
		if imdbPattern.MatchString(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return ""
	}
	return titleCaser.String(strings.Join(tokens, " "))
}

func splitTokens(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case '.', '_', ' ', '(', ')', '[', ']':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}
