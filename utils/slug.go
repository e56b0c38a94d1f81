package utils

import (
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
)

// Slugify lowercases s and joins its letter and digit runs with hyphens:
// "Men's Running Shoes!" becomes "men-s-running-shoes".
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// ResolveSlug returns explicit when set, otherwise a slug derived from name.
// ok is false when the result is not a valid slug.
func ResolveSlug(explicit, name string) (slug string, ok bool) {
	slug = strings.TrimSpace(explicit)
	if slug == "" {
		slug = Slugify(name)
	}
	return slug, history.IsSlug(slug)
}
