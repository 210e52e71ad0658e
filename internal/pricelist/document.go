package pricelist

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"lightcat/internal/model"
)

const (
	ParserVersion = "1.0.0"
	// PageSeparator splits pages in pdftotext output.
	PageSeparator = "\f"

	vibiaCategoryPrefix    = "pendelleuchten"
	vibiaProductTypeSuffix = "pendelleuchte"
)

type Metadata struct {
	Source        string    `json:"source_pdf"`
	ParserVersion string    `json:"parser_version"`
	Manufacturer  string    `json:"manufacturer"`
	TotalProducts int       `json:"total_products"`
	TotalVariants int       `json:"total_variants"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Document is the JSON cache written by the price-list tool and read back
// by LoadRegistry.
type Document struct {
	Metadata Metadata  `json:"metadata"`
	Products *Registry `json:"products"`
}

// Extractor turns the page texts of one price-list document into a
// registry.
type Extractor struct {
	Manufacturer model.Manufacturer
	Mapping      SKUMapping
	Stats        *Stats

	log *zap.Logger
}

func NewExtractor(m model.Manufacturer, mapping SKUMapping, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	if mapping == nil {
		mapping = SKUMapping{}
	}
	return &Extractor{
		Manufacturer: m,
		Mapping:      mapping,
		Stats:        NewStats(log),
		log:          log,
	}
}

// SplitPages splits pdftotext output into pages.
func SplitPages(text string) []string {
	pages := strings.Split(text, PageSeparator)
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages
}

func (e *Extractor) parsePage(text string) PageResult {
	if e.Manufacturer == model.Vibia {
		return ParseVibiaPage(text)
	}
	return ParseLodesPage(text)
}

// Extract parses every page and groups variants by base SKU. Repeated rows
// across pages are deduplicated per base SKU with Dedupe.
func (e *Extractor) Extract(pages []string) *Registry {
	var order []string
	variants := map[string][]model.PriceListVariant{}
	hints := map[string]string{}

	for i, page := range pages {
		res := e.parsePage(page)
		e.log.Debug("page parsed", zap.Int("page", i+1), zap.Int("rows", len(res.Rows)))
		for _, w := range res.Warnings {
			e.Stats.AddWarning(w, zap.Int("page", i+1))
		}
		for _, row := range res.Rows {
			if _, ok := variants[row.BaseSKU]; !ok {
				order = append(order, row.BaseSKU)
			}
			variants[row.BaseSKU] = append(variants[row.BaseSKU], row.Variant)
			if row.NameHint != "" && hints[row.BaseSKU] == "" {
				hints[row.BaseSKU] = row.NameHint
			}
		}
	}

	reg := NewRegistry()
	for _, base := range order {
		vs := Dedupe(variants[base])
		name, slug := e.identity(base, hints[base])
		p := model.PriceListProduct{
			BaseSKU:     base,
			ProductName: name,
			URLSlug:     slug,
			Variants:    vs,
		}
		if e.Manufacturer == model.Vibia {
			p.CategoryPrefix = vibiaCategoryPrefix
			p.ProductTypeSuffix = vibiaProductTypeSuffix
		}
		reg.put(p)
		e.Stats.AddProduct(base, len(vs))
	}
	return reg
}

// identity picks name and slug: curated mapping first, then the page
// header hint, then a placeholder.
func (e *Extractor) identity(base, hint string) (string, string) {
	if m, ok := e.Mapping[base]; ok {
		return m.ProductName, m.URLSlug
	}
	if hint != "" {
		return hint, Slugify(hint)
	}
	e.Stats.AddWarning("no product name found", zap.String("base_sku", base))
	return "Product " + base, unknownSlug
}

func (e *Extractor) Document(source string, reg *Registry) Document {
	total := 0
	for _, p := range reg.All() {
		total += len(p.Variants)
	}
	return Document{
		Metadata: Metadata{
			Source:        source,
			ParserVersion: ParserVersion,
			Manufacturer:  string(e.Manufacturer),
			TotalProducts: reg.Len(),
			TotalVariants: total,
			GeneratedAt:   time.Now().UTC(),
		},
		Products: reg,
	}
}
