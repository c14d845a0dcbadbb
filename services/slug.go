package services

import (
	"regexp"
	"strings"
)

var (
	nonSlugRun  = regexp.MustCompile(`[^a-z0-9]+`)
	edgeHyphens = regexp.MustCompile(`^-|-$`)
)

// Slugify derives the URL-safe slug for a post title.
// Runs of characters outside [a-z0-9] collapse to one hyphen; a leading or trailing hyphen is dropped.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRun.ReplaceAllString(slug, "-")
	return edgeHyphens.ReplaceAllString(slug, "")
}
