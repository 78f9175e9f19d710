package textutil

import (
	"regexp"
	"strings"
)

var (
	// slugInvalidPattern matches characters that have no place in a URL slug.
	slugInvalidPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
	// slugCollapsePattern collapses runs of whitespace and hyphens.
	slugCollapsePattern = regexp.MustCompile(`[\s-]+`)
	// cleanPattern strips everything except letters and digits.
	cleanPattern = regexp.MustCompile(`[^a-z0-9]`)
)

// leading articles ignored when producing a sortable title.
var sortArticles = []string{"the ", "an ", "a "}

// ToURLSlug converts a display title into a lowercase hyphenated slug.
// Characters outside [a-z0-9- ] are dropped and runs of separators
// collapse to a single hyphen.
func ToURLSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CleanTitle reduces a title to its bare comparable form: lowercase with
// all separators and punctuation removed.
func CleanTitle(title string) string {
	return cleanPattern.ReplaceAllString(strings.ToLower(title), "")
}

// SortTitle lowercases a title and strips a single leading article so
// alphabetical ordering ignores "The", "A", and "An".
func SortTitle(title string) string {
	sorted := strings.ToLower(strings.TrimSpace(title))
	for _, article := range sortArticles {
		if strings.HasPrefix(sorted, article) {
			return strings.TrimSpace(strings.TrimPrefix(sorted, article))
		}
	}
	return sorted
}
