package pricelist

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

const unknownSlug = "unknown"

var trailingVariantLetter = regexp.MustCompile(`\s+[a-z]$`)

// Slugify turns a price-list product name into a site slug. A trailing
// single-letter variant marker ("Aile a") is dropped. Placeholder names
// ("Product 12345") map to "unknown".
func Slugify(name string) string {
	if strings.HasPrefix(name, "Product ") {
		return unknownSlug
	}
	s := strings.ToLower(strings.TrimSpace(name))
	s = trailingVariantLetter.ReplaceAllString(s, "")
	s = slug.Make(s)
	if s == "" {
		return unknownSlug
	}
	return s
}
