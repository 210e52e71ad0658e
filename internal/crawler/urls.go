package crawler

import (
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://www.lodes.com"

// ProductURL builds the product page address on the default site.
func ProductURL(slug, lang string) string {
	return productURL(DefaultBaseURL, slug, lang)
}

func productURL(base, slug, lang string) string {
	if lang == "" {
		lang = "en"
	}
	return strings.TrimRight(base, "/") + "/" + lang + "/products/" + slug + "/"
}

// SlugFromURL returns the path segment after "products", or the last
// segment when the path has no products part.
func SlugFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, p := range parts {
		if p == "products" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func langFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if len(first) == 2 {
		return first
	}
	return ""
}

var nonProductImage = []string{"logo", "icon", "banner", "cookie", ".svg", "avatar", "placeholder"}

// IsProductImage filters logos, icons and similar page chrome.
func IsProductImage(src string) bool {
	s := strings.ToLower(src)
	for _, p := range nonProductImage {
		if strings.Contains(s, p) {
			return false
		}
	}
	return true
}

var sizeSuffixes = strings.NewReplacer("-scaled", "", "-150x150", "", "-300x300", "", "-1024x1024", "")

// FullResolution strips thumbnail size suffixes from an image URL.
func FullResolution(src string) string {
	return sizeSuffixes.Replace(src)
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if base == nil || ref == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
