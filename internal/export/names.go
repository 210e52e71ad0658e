package export

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"lightcat/internal/codes"
	"lightcat/internal/model"
)

// AttrColor is the variation attribute holding the color.
const AttrColor = "Farbe"

var designAttribution = regexp.MustCompile(`(?i)\s*,\s*design(?:er)?\b.*$`)

// CleanName drops a design attribution such as ", Design von Andrea
// Tosetto, 2015" from a product name.
func CleanName(name string) string {
	return strings.TrimSpace(designAttribution.ReplaceAllString(name, ""))
}

// FamilyName is the first word of the clean name.
func FamilyName(name string) string {
	fields := strings.Fields(CleanName(name))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimRight(fields[0], ",")
}

// TranslateColorsToGerman rewrites Italian and English color words to
// German and drops supplier codes.
func TranslateColorsToGerman(text string) string {
	return codes.GermanColors(text)
}

func firstColor(text string) string {
	first, _, _ := strings.Cut(text, ",")
	return strings.TrimSpace(first)
}

// VariationDisplayName is the export name of a row. Variations with a known
// parent use the parent's clean name followed by their first color in
// German; everything else uses its own clean name.
func VariationDisplayName(p model.Product, parent *model.Product) string {
	if p.Type != model.TypeVariation || parent == nil {
		return CleanName(p.Name)
	}
	color := TranslateColorsToGerman(firstColor(p.VariationAttributes.Value(AttrColor)))
	base := CleanName(parent.Name)
	if color == "" || base == "" {
		return CleanName(p.Name)
	}
	return base + " " + color
}

// FormatGermanDecimal renders v with a decimal comma and the given number
// of places, rounding half away from zero. nil renders as "".
func FormatGermanDecimal(v *float64, places int32) string {
	if v == nil {
		return ""
	}
	s := decimal.NewFromFloat(*v).StringFixed(places)
	return strings.Replace(s, ".", ",", 1)
}
