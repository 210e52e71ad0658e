package pricelist

import (
	"fmt"
	"regexp"
	"strings"

	"lightcat/internal/codes"
	"lightcat/internal/model"
)

// Pattern holds the line patterns of one price-list layout.
type Pattern struct {
	// SKU captures base SKU and color code.
	SKU *regexp.Regexp
	// Price captures units and cents of a price-only line.
	Price *regexp.Regexp
	// MappingKey validates keys of the SKU mapping file.
	MappingKey *regexp.Regexp
}

var LodesPattern = Pattern{
	SKU:        regexp.MustCompile(`(\d{5})\s+(\d{4})`),
	Price:      regexp.MustCompile(`^(\d{3,5}),(\d{2})$`),
	MappingKey: regexp.MustCompile(`^\d{4,5}$`),
}

var VibiaPattern = Pattern{
	SKU:        regexp.MustCompile(`(\d{4})\s+_\s+_\s+/\s+_\s+_`),
	Price:      regexp.MustCompile(`/\s+_?\s*([A-Z0-9]{1,2})\s+.*?(\d{3,5}),(\d{2})\s*€`),
	MappingKey: regexp.MustCompile(`^\d{4}$`),
}

func PatternFor(m model.Manufacturer) (Pattern, error) {
	switch m {
	case model.Lodes:
		return LodesPattern, nil
	case model.Vibia:
		return VibiaPattern, nil
	}
	return Pattern{}, fmt.Errorf("unsupported manufacturer %q", m)
}

const (
	maxNameHintLen    = 50
	nameHintLookahead = 4
)

var nameHintLine = regexp.MustCompile(`^[A-Za-z][A-Za-z\s\-]+[a-z]?$`)

// SKULine is one SKU occurrence in page order.
type SKULine struct {
	BaseSKU   string
	ColorCode string
	FullSKU   string
	NameHint  string
}

// ExtractSKUs returns SKU lines in text order. NameHint carries the most
// recent short alphabetic header that is followed by a SKU within a few
// lines.
func ExtractSKUs(lines []string, p Pattern) []SKULine {
	var out []SKULine
	hint := ""
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if m := p.SKU.FindStringSubmatch(line); m != nil {
			out = append(out, SKULine{
				BaseSKU:   m[1],
				ColorCode: m[2],
				FullSKU:   m[1] + " " + m[2],
				NameHint:  hint,
			})
			continue
		}
		if h, ok := nameHint(line, lines, i, p); ok {
			hint = h
		}
	}
	return out
}

func nameHint(line string, lines []string, idx int, p Pattern) (string, bool) {
	if line == "" || len(line) >= maxNameHintLen || !nameHintLine.MatchString(line) {
		return "", false
	}
	end := min(idx+1+nameHintLookahead, len(lines))
	for _, next := range lines[idx+1 : end] {
		if p.SKU.MatchString(next) {
			return line, true
		}
	}
	return "", false
}

// ExtractPrices returns valid prices in text order.
func ExtractPrices(text string, p Pattern) []float64 {
	var out []float64
	for _, line := range strings.Split(text, "\n") {
		m := p.Price.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if price, ok := parseCommaPrice(m[1], m[2]); ok {
			out = append(out, price)
		}
	}
	return out
}

// Row is one priced variant found on a page.
type Row struct {
	BaseSKU  string
	NameHint string
	Variant  model.PriceListVariant
}

// PageResult is what a page parser found plus its data-quality warnings.
type PageResult struct {
	Rows     []Row
	Warnings []string
}

// PairPage joins SKU lines and prices by position. The source documents
// print SKUs and prices as two parallel columns, so index i of one belongs
// to index i of the other. A count mismatch produces a single warning that
// names every SKU or price left without a partner.
func PairPage(skus []SKULine, prices []float64) PageResult {
	var res PageResult
	n := min(len(skus), len(prices))
	for i := 0; i < n; i++ {
		s := skus[i]
		color := codes.ResolveLodesColor(s.ColorCode)
		res.Rows = append(res.Rows, Row{
			BaseSKU:  s.BaseSKU,
			NameHint: s.NameHint,
			Variant: model.PriceListVariant{
				SKU:         s.FullSKU,
				ColorCode:   s.ColorCode,
				ColorNameEN: color.NameEN,
				ColorNameDE: color.NameDE,
				PriceEUR:    prices[i],
			},
		})
		if color.Unknown {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown color code %s for SKU %s", s.ColorCode, s.FullSKU))
		}
	}
	if len(skus) == len(prices) {
		return res
	}

	msg := fmt.Sprintf("SKU count (%d) != price count (%d) on page", len(skus), len(prices))
	if len(skus) > n {
		dropped := make([]string, 0, len(skus)-n)
		for _, s := range skus[n:] {
			dropped = append(dropped, s.FullSKU)
		}
		msg += "; no price for " + strings.Join(dropped, ", ")
	} else {
		msg += fmt.Sprintf("; %d unmatched prices", len(prices)-n)
	}
	res.Warnings = append(res.Warnings, msg)
	return res
}

// ParseLodesPage extracts priced variants from one Lodes page.
func ParseLodesPage(text string) PageResult {
	lines := strings.Split(text, "\n")
	return PairPage(ExtractSKUs(lines, LodesPattern), ExtractPrices(text, LodesPattern))
}

// Dedupe keeps one variant per color code (or SKU when no color code is
// set), choosing the higher price. Order of first appearance is kept.
func Dedupe(variants []model.PriceListVariant) []model.PriceListVariant {
	idx := map[string]int{}
	var out []model.PriceListVariant
	for _, v := range variants {
		key := v.ColorCode
		if key == "" {
			key = v.SKU
		}
		if i, ok := idx[key]; ok {
			if v.PriceEUR > out[i].PriceEUR {
				out[i] = v
			}
			continue
		}
		idx[key] = len(out)
		out = append(out, v)
	}
	return out
}
