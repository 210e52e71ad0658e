package pricelist

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const maxPriceEUR = 100000

// ValidPrice accepts prices in the open range (0, 100000).
func ValidPrice(p float64) bool {
	return p > 0 && p < maxPriceEUR
}

func ValidSKU(sku string, pattern *regexp.Regexp) bool {
	sku = strings.TrimSpace(sku)
	return sku != "" && pattern.MatchString(sku)
}

var priceToken = regexp.MustCompile(`\d[\d.,\s]*\d|\d`)

// ExtractPriceEUR reads the first price in text, e.g. "572,00 €",
// "€1240.00" or "1.240,00 €".
func ExtractPriceEUR(text string) (float64, bool) {
	tok := priceToken.FindString(text)
	if tok == "" {
		return 0, false
	}
	tok = strings.Join(strings.Fields(tok), "")

	lastComma := strings.LastIndex(tok, ",")
	lastDot := strings.LastIndex(tok, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			tok = strings.ReplaceAll(tok, ".", "")
			tok = strings.Replace(tok, ",", ".", 1)
		} else {
			tok = strings.ReplaceAll(tok, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(tok, ",") > 1 {
			tok = strings.ReplaceAll(tok, ",", "")
		} else {
			tok = strings.Replace(tok, ",", ".", 1)
		}
	case strings.Count(tok, ".") > 1:
		tok = strings.ReplaceAll(tok, ".", "")
	}

	d, err := decimal.NewFromString(tok)
	if err != nil {
		return 0, false
	}
	p := d.InexactFloat64()
	if !ValidPrice(p) {
		return 0, false
	}
	return p, true
}

// parseCommaPrice turns the two captures of "572,00" into 572.00.
func parseCommaPrice(units, cents string) (float64, bool) {
	d, err := decimal.NewFromString(units + "." + cents)
	if err != nil {
		return 0, false
	}
	p := d.InexactFloat64()
	return p, ValidPrice(p)
}
