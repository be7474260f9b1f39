package common

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
	htmlTags     = regexp.MustCompile(`<[^>]*>`)
)

// Slugify derives a URL slug from a title: lowercase, punctuation
// stripped, whitespace runs collapsed to single hyphens.
// "Hello World" -> "hello-world".
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespace.ReplaceAllString(strings.TrimSpace(slug), "-")
	return slug
}

// Excerpt strips HTML tags from content and truncates to maxLen
// characters, appending an ellipsis when anything was cut. The limit
// counts characters, not bytes, so multi-byte text is never cut
// mid-rune.
func Excerpt(content string, maxLen int) string {
	plain := htmlTags.ReplaceAllString(content, "")
	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	return string(runes[:maxLen]) + "..."
}
