package blueprint

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TypeName converts a slug to an exported Go identifier:
// "web-scraper" and "web_scraper" both become "WebScraper".
func TypeName(slug string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	for _, part := range splitSlug(slug) {
		b.WriteString(caser.String(strings.ToLower(part)))
	}
	return b.String()
}

// MethodName is the exported method identifier for an agent or task name.
// It follows the same rules as TypeName.
func MethodName(slug string) string {
	return TypeName(slug)
}

// PackageName converts a slug to a Go package name: separators dropped,
// all lowercase. "web-scraper" becomes "webscraper".
func PackageName(slug string) string {
	return strings.ToLower(strings.Join(splitSlug(slug), ""))
}

// Slug normalizes a user-supplied project name to snake_case, the form used
// for directory names and config keys.
func Slug(name string) string {
	return strings.ToLower(strings.Join(splitSlug(name), "_"))
}

var inputPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// InputNames extracts the {{placeholder}} names referenced by a task
// description, in order of first appearance.
func InputNames(description string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range inputPattern.FindAllStringSubmatch(description, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

func splitSlug(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
}
