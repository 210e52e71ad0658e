package crawler

import (
	"regexp"
	"strconv"
	"strings"

	"lightcat/internal/model"
)

var (
	designerPattern = regexp.MustCompile(`(?i)design by\s+([^,]+)`)
	trailingYear    = regexp.MustCompile(`,?\s*\d{4}$`)
	weightPattern   = regexp.MustCompile(`(?i)net weight:\s*(\d+(?:[.,]\d+)?)\s*kg`)
)

// ParseDesigner reads the designer from a title such as
// "Kelly, design by Andrea Tosetto, 2015".
func ParseDesigner(title string) string {
	m := designerPattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(trailingYear.ReplaceAllString(strings.TrimSpace(m[1]), ""))
}

// Light temperature column headers look like attributes but are not.
var codeHeaders = map[string]bool{"Code 2700 K": true, "Code 3000 K": true}

// ParseHeaderAttributes turns "Key: Value" table headers into attributes.
func ParseHeaderAttributes(headers []string) *model.Attributes {
	attrs := &model.Attributes{}
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" || codeHeaders[h] {
			continue
		}
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key != "" && value != "" {
			attrs.Set(key, value)
		}
	}
	return attrs
}

// ParseWeight finds "Net weight: 0.22 kg" in text.
func ParseWeight(text string) (float64, bool) {
	m := weightPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var certificationPatterns = []struct {
	re     *regexp.Regexp
	key    string
	format func(string) string
}{
	{regexp.MustCompile(`(?i)\bIP\s*(\d{2})\b`), "IP Rating", func(s string) string { return "IP" + s }},
	{regexp.MustCompile(`(\d{2,3}\s*[-–]\s*\d{2,3}\s*V)\b`), "Voltage", strings.TrimSpace},
	{regexp.MustCompile(`\b(CE)\b`), "Certification", strings.TrimSpace},
}

// ExtractCertifications picks IP rating, voltage range and CE marking out
// of page text. The first occurrence of each wins.
func ExtractCertifications(text string) *model.Attributes {
	attrs := &model.Attributes{}
	for _, p := range certificationPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			attrs.Set(p.key, p.format(m[1]))
		}
	}
	return attrs
}
