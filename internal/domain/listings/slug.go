package listings

import (
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe slug.
// Example: "Rainbow Café & Bar" -> "rainbow-caf-bar"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "business"
	}
	return base
}

// BusinessSlug makes the slug unique by suffixing the first block of the id.
func BusinessSlug(name, id string) string {
	suffix, _, _ := strings.Cut(id, "-")
	if suffix == "" {
		return MakeSlug(name)
	}
	return MakeSlug(name) + "-" + suffix
}
