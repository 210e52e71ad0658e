package export

import (
	"fmt"
	"strings"

	"lightcat/internal/model"
)

// ShortDescriptionPlain is the plain-text teaser for the shop listing.
// Variations have none; otherwise the generated short description wins,
// then "<installation type> - <family>".
func ShortDescriptionPlain(p model.Product) string {
	if p.Type == model.TypeVariation {
		return ""
	}
	if s := strings.TrimSpace(p.ShortDescription); s != "" {
		return s
	}
	if p.InstallationType == "" {
		return ""
	}
	if family := FamilyName(p.Name); family != "" {
		return p.InstallationType + " - " + family
	}
	return p.InstallationType
}

// ShortDescriptionHTML renders an intro line followed by a spec list. With
// no specs only the intro is returned.
func ShortDescriptionHTML(p model.Product) string {
	intro := CleanName(p.Name)
	if p.InstallationType != "" {
		intro = p.InstallationType + " - " + intro
	}

	var items []string
	add := func(label, value string) {
		if value != "" {
			items = append(items, fmt.Sprintf("<li><strong>%s:</strong> %s</li>", label, value))
		}
	}
	add("Lichttechnik", lightTechnique(p.LightSpecs))
	add("Material", p.Material)
	add("Farbe", TranslateColorsToGerman(productColors(p)))
	add("Abmessungen", dimensions(p.Dimensions))

	if len(items) == 0 {
		return intro
	}
	return intro + "\n<ul>\n" + strings.Join(items, "\n") + "\n</ul>"
}

func productColors(p model.Product) string {
	if c := p.VariationAttributes.Value(AttrColor); c != "" {
		return c
	}
	return p.AvailableColors
}

func lightTechnique(l *model.LightSpecs) string {
	if l.Empty() {
		return ""
	}
	var parts []string
	if w := strings.TrimSuffix(strings.TrimSpace(l.Wattage), "W"); w != "" {
		parts = append(parts, "LED "+strings.TrimSpace(w)+"W")
	}
	if l.Kelvin != "" {
		parts = append(parts, l.Kelvin)
	}
	if lm := strings.TrimSuffix(strings.TrimSpace(l.Lumen), "lm"); lm != "" {
		parts = append(parts, strings.TrimSpace(lm)+"lm")
	}
	if l.CRI != "" {
		parts = append(parts, "CRI "+l.CRI)
	}
	return strings.Join(parts, ", ")
}

func dimensions(d *model.Dimensions) string {
	if d == nil {
		return ""
	}
	var parts []string
	for _, v := range []float64{d.Length, d.Width, d.Height} {
		if v > 0 {
			parts = append(parts, fmt.Sprintf("%.1f", v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "x") + "cm"
}
