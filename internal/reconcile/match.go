package reconcile

import (
	"regexp"
	"strings"

	"lightcat/internal/codes"
	"lightcat/internal/model"
)

// codeHeader is the variant table column holding the article number.
const codeHeader = "Code"

// sizeDescriptor finds headers like "Kelly small dome 50" or "Cluster 3".
var sizeDescriptor = regexp.MustCompile(`(?i)\b(?:(?:small|medium|large)\s+)?(?:dome|sphere|suspension|wall|ceiling|floor|table|cluster)\s*\d+\b`)

// SizeDescriptor returns the size/mount descriptor of a column header
// lower-cased, or "" when the header has none.
func SizeDescriptor(header string) string {
	return strings.ToLower(sizeDescriptor.FindString(header))
}

func rowDescriptor(row model.VariantRow) (string, string) {
	for _, c := range row {
		if d := SizeDescriptor(c.Header); d != "" {
			return d, c.Header
		}
	}
	return "", ""
}

// FindMatchingPriceListProduct picks the price-list product for a site
// slug. Candidates are products whose slug equals slug or whose name
// contains it; a size descriptor in the row headers selects among them,
// otherwise the first candidate in document order wins. The second return
// is the matched base SKU, or slug when nothing matched.
func (e *Engine) FindMatchingPriceListProduct(slug string, rows []model.VariantRow) (*model.PriceListProduct, string) {
	candidates := e.registry.Candidates(slug)
	if len(candidates) == 0 {
		return nil, slug
	}

	for _, row := range rows {
		desc, _ := rowDescriptor(row)
		if desc == "" {
			continue
		}
		for i := range candidates {
			if containsWords(candidates[i].ProductName, desc) {
				p := candidates[i]
				return &p, p.BaseSKU
			}
		}
	}

	p := candidates[0]
	return &p, p.BaseSKU
}

// containsWords reports whether phrase occurs in s on word boundaries, so
// "dome 5" does not match "dome 50".
func containsWords(s, phrase string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	return err == nil && re.MatchString(s)
}

// colorText returns the cell holding the color: the size-descriptor column
// when present, otherwise the first non-empty cell that is not the code.
func colorText(row model.VariantRow) string {
	if _, header := rowDescriptor(row); header != "" {
		v, _ := row.Get(header)
		return v
	}
	for _, c := range row {
		if c.Header != codeHeader && strings.TrimSpace(c.Value) != "" {
			return c.Value
		}
	}
	return ""
}

// MapVariantToPriceList finds the variant of p a scraped row refers to. A
// "Code" cell naming a variant SKU wins. Otherwise the color text is
// resolved to a color code, matched exactly first and then by finish prefix
// so "1000" also finds LED variants such as "1027".
func MapVariantToPriceList(row model.VariantRow, p *model.PriceListProduct) (model.PriceListVariant, bool) {
	if p == nil {
		return model.PriceListVariant{}, false
	}
	if article, ok := row.Get(codeHeader); ok {
		for _, v := range p.Variants {
			if v.SKU == strings.TrimSpace(article) {
				return v, true
			}
		}
	}
	code, ok := codes.LodesCodeForColorName(colorText(row))
	if !ok {
		return model.PriceListVariant{}, false
	}
	for _, v := range p.Variants {
		if v.ColorCode == code {
			return v, true
		}
	}
	finish := code[:2]
	for _, v := range p.Variants {
		if len(v.ColorCode) >= 2 && v.ColorCode[:2] == finish {
			return v, true
		}
	}
	return model.PriceListVariant{}, false
}
