package codes

import (
	"regexp"
	"sort"
	"strings"
)

// Italian and English color words as they appear on product pages.
var germanColors = map[string]string{
	"bianco opaco":    "Weiß Matt",
	"nero opaco":      "Schwarz Matt",
	"bronzo ramato":   "Bronze",
	"champagne opaco": "Champagner Matt",
	"bianco lucido":   "Weiß Glänzend",
	"nero lucido":     "Schwarz Glänzend",
	"matte white":     "Weiß Matt",
	"matte black":     "Schwarz Matt",
	"glossy white":    "Weiß Glänzend",
	"glossy black":    "Schwarz Glänzend",
	"coppery bronze":  "Bronze",
	"matte champagne": "Champagner Matt",
	"bianco":          "Weiß",
	"white":           "Weiß",
	"nero":            "Schwarz",
	"black":           "Schwarz",
	"bronzo":          "Bronze",
	"champagne":       "Champagner",
	"grigio":          "Grau",
	"grey":            "Grau",
	"gray":            "Grau",
	"rosso":           "Rot",
	"red":             "Rot",
	"verde":           "Grün",
	"green":           "Grün",
	"blu":             "Blau",
	"blue":            "Blau",
	"ottone":          "Messing",
	"brass":           "Messing",
	"rame":            "Kupfer",
	"copper":          "Kupfer",
	"cromo":           "Chrom",
	"chrome":          "Chrom",
	"oro":             "Gold",
}

var germanColorPattern = func() *regexp.Regexp {
	keys := make([]string, 0, len(germanColors))
	for k := range germanColors {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`)
}()

// A code is a whole token: "– 9010" goes, "- 2700K" and "- 20cm" stay.
var inlineColorCode = regexp.MustCompile(`\s*[–-]\s*\d+\b`)

// GermanColors rewrites color words to German, drops supplier codes such as
// "– 9010" and collapses whitespace. German input passes through.
func GermanColors(text string) string {
	text = inlineColorCode.ReplaceAllString(text, "")
	text = germanColorPattern.ReplaceAllStringFunc(text, func(m string) string {
		return germanColors[strings.ToLower(m)]
	})
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
