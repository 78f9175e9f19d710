package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"marquee/internal/movie"
)

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}

func formatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func truncate(value string, max int) string {
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}

// parseSince accepts either a duration ("72h") or a calendar date
// ("2006-01-02") and returns the resulting point in time.
func parseSince(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Add(-24 * time.Hour), nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("duration %q must not be negative", value)
		}
		return now.Add(-d), nil
	}
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a duration or a date", value)
}

func movieRow(mv *movie.Movie) []string {
	return []string{
		strconv.Itoa(mv.TmdbID),
		truncate(mv.Title, 50),
		formatYear(mv.Year),
		string(mv.Status),
		formatDate(mv.PhysicalRelease),
	}
}

var movieTableHeaders = []string{"TMDB ID", "Title", "Year", "Status", "Physical"}

var movieTableAligns = []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft}
