package reconcile

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"lightcat/internal/model"
	"lightcat/internal/pricelist"
)

// Variation attribute names.
const (
	AttrColor   = "Farbe"
	AttrLight   = "Lichtfarbe"
	AttrControl = "Steuerung"
)

// Engine reconciles site scrapes against one price-list registry. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	registry *pricelist.Registry
	log      *zap.Logger
}

func New(registry *pricelist.Registry, log *zap.Logger) *Engine {
	if registry == nil {
		registry = pricelist.NewRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{registry: registry, log: log}
}

// variantAttributes describes a price-list variant the way the variation
// columns show it: German color, plus LED and control for Vibia codes.
func variantAttributes(v model.PriceListVariant) *model.Attributes {
	a := model.NewAttributes(codeHeader, v.SKU)
	color := v.ColorNameDE
	if color == "" {
		color = v.SurfaceNameDE
	}
	a.Set(AttrColor, color)
	if v.LEDNameDE != "" {
		a.Set(AttrLight, v.LEDNameDE)
	}
	if v.ControlNameDE != "" {
		a.Set(AttrControl, v.ControlNameDE)
	}
	return a
}

// Result is the product list for one scrape plus its data-quality warnings.
type Result struct {
	Products []model.Product
	Warnings []string
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Reconcile builds the catalog records for one scraped product. With a
// priced price-list match it returns a variable parent under the base SKU
// followed by one variation per mapped row. Otherwise it returns a single
// simple product under the scrape slug. A scrape without a slug yields no
// products.
func (e *Engine) Reconcile(s model.SiteScrape) Result {
	var res Result
	if s.Slug == "" {
		res.warn("scrape has no slug")
		return res
	}

	plp, sku := e.FindMatchingPriceListProduct(s.Slug, s.VariantRows)
	attrs, cable := EnrichAttributes(s.Attributes, s.CableLength, plp)

	base := model.Product{
		SKU:             s.Slug,
		Name:            s.Name,
		Description:     s.Description,
		Manufacturer:    s.Manufacturer,
		Categories:      slices.Clone(s.Categories),
		Attributes:      attrs,
		Images:          slices.Clone(s.Images),
		IPRating:        attrs.Value(AttrIPRating),
		DatasheetURL:    s.DatasheetURL,
		CableLength:     cable,
		ScrapedLanguage: s.Language,
	}
	if s.Weight != nil {
		base.Weight = model.Ptr(*s.Weight)
	}

	if plp == nil {
		e.log.Debug("no price list match", zap.String("slug", s.Slug))
		res.Products = []model.Product{model.NewSimple(base)}
		return res
	}
	if plp.Dimensions != nil {
		base.Dimensions = model.Ptr(*plp.Dimensions)
	}
	if len(plp.Variants) == 0 {
		res.Products = []model.Product{model.NewSimple(base)}
		return res
	}

	var (
		variants []*model.Attributes
		prices   = map[string]float64{}
	)
	for i, row := range s.VariantRows {
		v, ok := MapVariantToPriceList(row, plp)
		if !ok {
			res.warn("%s: variant row %d has no price-list match (%q)", s.Slug, i+1, colorText(row))
			continue
		}
		if _, dup := prices[v.SKU]; dup {
			continue
		}
		prices[v.SKU] = v.PriceEUR
		variants = append(variants, variantAttributes(v))
	}
	if len(variants) == 0 {
		res.warn("%s: no variant row could be priced against %s, exporting as simple product", s.Slug, sku)
		res.Products = []model.Product{model.NewSimple(base)}
		return res
	}

	base.SKU = sku
	if plp.ProductName != "" {
		base.Name = plp.ProductName
	}
	products := BuildVariableProducts(base, variants)
	products[0].AvailableColors = products[0].VariationAttributes.Value(AttrColor)
	for i := 1; i < len(products); i++ {
		child := &products[i]
		child.RegularPrice = model.Ptr(prices[child.SKU])
		child.Name = variationName(base.Name, child.VariationAttributes)
	}

	e.log.Debug("reconciled",
		zap.String("slug", s.Slug),
		zap.String("base_sku", sku),
		zap.Int("variations", len(products)-1),
		zap.Int("warnings", len(res.Warnings)))
	res.Products = products
	return res
}

func variationName(parent string, attrs *model.Attributes) string {
	name := parent
	for _, k := range []string{AttrColor, AttrLight, AttrControl} {
		if v := attrs.Value(k); v != "" {
			name += " " + v
		}
	}
	return name
}
