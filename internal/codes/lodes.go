package codes

import (
	"regexp"
	"sort"
	"strings"
)

// Name is a bilingual label.
type Name struct {
	EN string
	DE string
	IT string
}

// ColorInfo is the decoded form of a Lodes color code.
type ColorInfo struct {
	NameEN      string
	NameDE      string
	FinishCode  string
	VariantCode string
	// Unknown is set when any part of the code fell back to a placeholder.
	Unknown bool
}

type legacyColor struct {
	Name
	RAL string
}

// Full four-digit codes used by older price lists. They win over
// decomposition because the RAL suffix cannot be derived from the parts.
var legacyColors = map[string]legacyColor{
	"1000": {Name{"Matte White", "Weiß Matt", "Bianco Opaco"}, "9010"},
	"2000": {Name{"Matte Black", "Schwarz Matt", "Nero Opaco"}, "9005"},
	"3500": {Name{"Coppery Bronze", "Bronze", "Bronzo Ramato"}, ""},
	"4500": {Name{"Matte Champagne", "Champagner Matt", "Champagne Opaco"}, ""},
}

var finishCodes = map[string]Name{
	"10": {"Matte White", "Weiß Matt", "Bianco Opaco"},
	"12": {"Glossy White", "Weiß Glänzend", "Bianco Lucido"},
	"20": {"Matte Black", "Schwarz Matt", "Nero Opaco"},
	"22": {"Glossy Black", "Schwarz Glänzend", "Nero Lucido"},
	"35": {"Coppery Bronze", "Bronze", "Bronzo Ramato"},
	"45": {"Matte Champagne", "Champagner Matt", "Champagne Opaco"},
	"40": {"Chrome", "Chrom", "Cromo"},
	"46": {"Glossy Bronze", "Bronze Glänzend", "Bronzo Lucido"},
	"47": {"Brushed Chrome", "Chrom Gebürstet", "Cromo Spazzolato"},
	"50": {"Gold", "Gold", "Oro"},
	"55": {"Rose Gold", "Roségold", "Oro Rosa"},
	"60": {"Lacquer Red", "Lack Rot", "Rosso Laccato"},
	"67": {"Extra Matte Champagne", "Extra Matt Champagner", "Champagne Extra Opaco"},
	"00": {"Clear Glass", "Klares Glas", "Vetro Trasparente"},
	"01": {"Frosted White", "Weiß Satiniert", "Bianco Satinato"},
	"13": {"Frosted White", "Weiß Satiniert", "Bianco Satinato"},
	"43": {"Glossy Smoke", "Rauch Glänzend", "Fumo Lucido"},
	"86": {"White Silk", "Weiß Seide", "Bianco Seta"},
	"02": {"Clear", "Transparent", "Trasparente"},
	"03": {"Frosted", "Satiniert", "Satinato"},
	"04": {"Smoke", "Rauch", "Fumo"},
	"05": {"Bronze", "Bronze", "Bronzo"},
	"06": {"Red", "Rot", "Rosso"},
	"07": {"Green", "Grün", "Verde"},
	"08": {"Amber", "Bernstein", "Ambra"},
}

var ledTemperatures = map[string]string{
	"27": "2700K",
	"30": "3000K",
	"35": "3500K",
	"40": "4000K",
}

var sizeVariants = map[string]Name{
	"20": {EN: "20cm diameter", DE: "20cm Durchmesser"},
	"25": {EN: "25cm diameter", DE: "25cm Durchmesser"},
}

// ResolveLodesColor decodes a 2-5 character Lodes color code. It never
// fails: unknown parts are rendered as placeholders containing the code and
// the result is flagged Unknown.
func ResolveLodesColor(code string) ColorInfo {
	code = strings.TrimSpace(code)
	if c, ok := legacyColors[code]; ok {
		return ColorInfo{NameEN: c.EN, NameDE: c.DE, FinishCode: code[:2], VariantCode: code[2:]}
	}
	if len(code) < 2 || len(code) > 5 {
		return ColorInfo{
			NameEN:     "Color " + code,
			NameDE:     "Farbe " + code,
			FinishCode: code,
			Unknown:    true,
		}
	}

	info := ColorInfo{FinishCode: code[:2], VariantCode: code[2:]}
	finish, ok := finishCodes[info.FinishCode]
	if !ok {
		finish = Name{EN: "Color " + info.FinishCode, DE: "Farbe " + info.FinishCode}
		info.Unknown = true
	}
	info.NameEN, info.NameDE = finish.EN, finish.DE

	if info.VariantCode == "" {
		return info
	}
	if temp, ok := ledTemperatures[info.VariantCode]; ok {
		info.NameEN += " - " + temp
		info.NameDE += " - " + temp
		return info
	}
	if size, ok := sizeVariants[info.VariantCode]; ok {
		info.NameEN += " - " + size.EN
		info.NameDE += " - " + size.DE
		return info
	}
	info.NameEN += " (variant " + info.VariantCode + ")"
	info.NameDE += " (Variante " + info.VariantCode + ")"
	info.Unknown = true
	return info
}

type colorAlias struct {
	name string
	code string
}

// Reverse lookup table for site color texts. Sorted longest first at init
// so "champagne opaco" is tried before "champagne".
var colorAliases = func() []colorAlias {
	out := []colorAlias{
		{"bianco", "1000"}, {"white", "1000"}, {"weiß", "1000"}, {"weiss", "1000"},
		{"nero", "2000"}, {"black", "2000"}, {"schwarz", "2000"},
		{"bronzo", "3500"}, {"bronze", "3500"},
		{"champagne", "4500"}, {"champagner", "4500"},
	}
	for code, c := range legacyColors {
		for _, n := range []string{c.EN, c.DE, c.IT} {
			out = append(out, colorAlias{strings.ToLower(n), code})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].name) != len(out[j].name) {
			return len(out[i].name) > len(out[j].name)
		}
		return out[i].name < out[j].name
	})
	return out
}()

var (
	colorCodeSuffix = regexp.MustCompile(`\s*[–-]\s*\d+\s*$`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// NormalizeColorText trims, collapses whitespace and drops a trailing
// supplier code such as "– 9005".
func NormalizeColorText(text string) string {
	text = whitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	text = colorCodeSuffix.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// LodesCodeForColorName maps free color text (Italian, English or German)
// to a legacy color code. Bare RAL or legacy codes are accepted too.
func LodesCodeForColorName(text string) (string, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return "", false
	}
	norm := strings.ToLower(NormalizeColorText(raw))
	if norm != "" {
		for _, a := range colorAliases {
			if strings.Contains(norm, a.name) {
				return a.code, true
			}
		}
	}

	candidate := norm
	if candidate == "" {
		candidate = raw
	}
	if _, ok := legacyColors[candidate]; ok {
		return candidate, true
	}
	for code, c := range legacyColors {
		if c.RAL != "" && c.RAL == candidate {
			return code, true
		}
	}
	return "", false
}
