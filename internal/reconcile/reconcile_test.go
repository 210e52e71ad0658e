package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightcat/internal/model"
	"lightcat/internal/pricelist"
)

func kellyEngine() *Engine {
	return New(pricelist.NewRegistry(pricelist.KellyFallback()...), nil)
}

func rows(header string, colors ...string) []model.VariantRow {
	out := make([]model.VariantRow, 0, len(colors))
	for _, c := range colors {
		out = append(out, model.NewVariantRow(header, c))
	}
	return out
}

func TestFindMatchingPriceListProductBySizeDescriptor(t *testing.T) {
	e := kellyEngine()
	tests := []struct {
		header string
		want   string
	}{
		{"Kelly small dome 50", "14126"},
		{"Kelly medium dome 60", "14127"},
		{"Kelly large dome 80", "14128"},
		{"Kelly medium sphere 50", "14123"},
		{"Color", "14126"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			p, sku := e.FindMatchingPriceListProduct("kelly", rows(tt.header, "Bianco Opaco – 9010"))
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.BaseSKU)
			assert.Equal(t, tt.want, sku)
		})
	}
}

func TestFindMatchingPriceListProductWholeDescriptor(t *testing.T) {
	reg := pricelist.NewRegistry(
		model.PriceListProduct{BaseSKU: "14126", ProductName: "Kelly small dome 50", URLSlug: "kelly"},
		model.PriceListProduct{BaseSKU: "14120", ProductName: "Kelly small dome 5", URLSlug: "kelly"},
	)
	e := New(reg, nil)

	p, sku := e.FindMatchingPriceListProduct("kelly", rows("Kelly small dome 5", "Bianco Opaco"))
	require.NotNil(t, p)
	assert.Equal(t, "14120", sku)

	p, sku = e.FindMatchingPriceListProduct("kelly", rows("Kelly small dome 50", "Bianco Opaco"))
	require.NotNil(t, p)
	assert.Equal(t, "14126", sku)
}

func TestFindMatchingPriceListProductUnknownSlug(t *testing.T) {
	p, sku := kellyEngine().FindMatchingPriceListProduct("unknown-product", rows("Color", "White"))
	assert.Nil(t, p)
	assert.Equal(t, "unknown-product", sku)
}

func TestFindMatchingPriceListProductByName(t *testing.T) {
	reg := pricelist.NewRegistry(model.PriceListProduct{BaseSKU: "14300", ProductName: "Aile a", URLSlug: "aile-suspension"})
	p, sku := New(reg, nil).FindMatchingPriceListProduct("aile", nil)
	require.NotNil(t, p)
	assert.Equal(t, "14300", sku)
}

func TestMapVariantToPriceList(t *testing.T) {
	small, _ := pricelist.NewRegistry(pricelist.KellyFallback()...).ByBaseSKU("14126")
	cluster, _ := pricelist.NewRegistry(pricelist.KellyFallback()...).ByBaseSKU("14711")

	tests := []struct {
		name    string
		row     model.VariantRow
		product model.PriceListProduct
		sku     string
		price   float64
	}{
		{"white", model.NewVariantRow("Kelly small dome 50", "Bianco Opaco – 9010"), small, "14126 1000", 572},
		{"black", model.NewVariantRow("Kelly small dome 50", "Nero Opaco – 9005"), small, "14126 2000", 572},
		{"bronze", model.NewVariantRow("Kelly small dome 50", "Bronzo Ramato"), small, "14126 3500", 607},
		{"champagne", model.NewVariantRow("Kelly small dome 50", "Champagne Opaco"), small, "14126 4500", 607},
		{"first non code cell", model.NewVariantRow("Code", "x", "Finish", "Matte Black"), small, "14126 2000", 572},
		{"finish prefix", model.NewVariantRow("Kelly Cluster", "White"), cluster, "14711 1027", 388},
		{"code cell", model.NewVariantRow("Code", "14126 3500", "Color", "Unknown Color"), small, "14126 3500", 607},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := MapVariantToPriceList(tt.row, &tt.product)
			require.True(t, ok)
			assert.Equal(t, tt.sku, v.SKU)
			assert.Equal(t, tt.price, v.PriceEUR)
		})
	}
}

func TestMapVariantToPriceListMisses(t *testing.T) {
	p := &model.PriceListProduct{Variants: []model.PriceListVariant{
		{SKU: "14126 1000", ColorCode: "1000", PriceEUR: 572},
		{SKU: "14126 2000", ColorCode: "2000", PriceEUR: 572},
	}}

	_, ok := MapVariantToPriceList(model.NewVariantRow("Kelly small dome 50", "Unknown Color"), p)
	assert.False(t, ok)

	_, ok = MapVariantToPriceList(model.NewVariantRow("Kelly small dome 50", "Bronzo Ramato"), p)
	assert.False(t, ok)

	_, ok = MapVariantToPriceList(model.NewVariantRow("Kelly small dome 50", "Bianco Opaco – 9010"), nil)
	assert.False(t, ok)

	_, ok = MapVariantToPriceList(nil, p)
	assert.False(t, ok)
}

func TestEnrichAttributes(t *testing.T) {
	p := &model.PriceListProduct{
		LightSource: "E27 LED B / L max 12cm\n3× 25 W",
		Dimmability: "TRIAC",
		Voltage:     "220-240V",
		IPRating:    "IP20",
		CableLength: "max 250cm",
	}
	attrs := model.NewAttributes("Designer", "Andrea Tosetto", "Voltage", "230V")

	got, cable := EnrichAttributes(attrs, "", p)
	assert.Equal(t, []string{"Designer", "Voltage", "Light source", "Dimmbarkeit", "IP Rating"}, got.Keys())
	assert.Equal(t, "230V", got.Value("Voltage"))
	assert.Equal(t, "TRIAC", got.Value("Dimmbarkeit"))
	assert.Equal(t, "E27 LED B / L max 12cm\n3× 25 W", got.Value("Light source"))
	assert.Equal(t, "max 250cm", cable)

	assert.Equal(t, 2, attrs.Len(), "input must not change")
}

func TestEnrichAttributesCableLength(t *testing.T) {
	p := &model.PriceListProduct{CableLength: "max 250cm"}

	_, cable := EnrichAttributes(nil, "max 300cm", p)
	assert.Equal(t, "max 300cm", cable)

	got, cable := EnrichAttributes(nil, "", p)
	assert.Equal(t, "max 250cm", cable)
	assert.Equal(t, 0, got.Len())
}

func TestEnrichAttributesWithoutProduct(t *testing.T) {
	attrs := model.NewAttributes("Designer", "Andrea Tosetto")
	got, cable := EnrichAttributes(attrs, "max 300cm", nil)
	assert.Equal(t, attrs.Map(), got.Map())
	assert.Equal(t, "max 300cm", cable)
	assert.NotSame(t, attrs, got)
}

func kellyScrape(colors ...string) model.SiteScrape {
	return model.SiteScrape{
		Slug:         "kelly",
		Manufacturer: model.Lodes,
		Language:     "en",
		Name:         "Kelly",
		Description:  "Suspension lamp with a blown glass diffuser.",
		Images:       []string{"https://example.com/kelly.jpg"},
		Categories:   []string{"Suspension"},
		Attributes:   model.NewAttributes("Designer", "Andrea Tosetto"),
		VariantRows:  rows("Kelly small dome 50", colors...),
	}
}

func TestReconcileKellySmallDome(t *testing.T) {
	reg := pricelist.NewRegistry(model.PriceListProduct{
		BaseSKU: "14126", ProductName: "Kelly small dome 50", URLSlug: "kelly",
		Variants: []model.PriceListVariant{
			{SKU: "14126 1000", ColorCode: "1000", ColorNameDE: "Weiß Matt", PriceEUR: 572},
			{SKU: "14126 2000", ColorCode: "2000", ColorNameDE: "Schwarz Matt", PriceEUR: 572},
		},
	})
	res := New(reg, nil).Reconcile(kellyScrape("Bianco Opaco – 9010", "Nero Opaco – 9005"))

	assert.Empty(t, res.Warnings)
	require.Len(t, res.Products, 3)

	parent := res.Products[0]
	assert.Equal(t, model.TypeVariable, parent.Type)
	assert.Equal(t, "14126", parent.SKU)
	assert.Equal(t, "Kelly small dome 50", parent.Name)
	assert.Nil(t, parent.RegularPrice)
	assert.Equal(t, "Weiß Matt, Schwarz Matt", parent.VariationAttributes.Value(AttrColor))
	assert.Equal(t, "Weiß Matt, Schwarz Matt", parent.AvailableColors)

	for i, want := range []string{"14126 1000", "14126 2000"} {
		child := res.Products[i+1]
		assert.Equal(t, model.TypeVariation, child.Type)
		assert.Equal(t, want, child.SKU)
		assert.Equal(t, "14126", child.ParentSKU)
		price, ok := child.Price()
		require.True(t, ok)
		assert.Equal(t, 572.0, price)
	}
	assert.Equal(t, "Kelly small dome 50 Weiß Matt", res.Products[1].Name)

	require.NoError(t, model.ValidateHierarchy(res.Products))
}

func TestReconcileDropsUnmappedRowsAndDuplicates(t *testing.T) {
	res := kellyEngine().Reconcile(kellyScrape("Bianco Opaco – 9010", "Unknown Color", "White"))

	require.Len(t, res.Products, 2)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Unknown Color")
	assert.Equal(t, "14126 1000", res.Products[1].SKU)
	require.NoError(t, model.ValidateHierarchy(res.Products))
}

func TestReconcileEnrichesFromPriceList(t *testing.T) {
	res := kellyEngine().Reconcile(kellyScrape("Nero Opaco – 9005"))
	parent := res.Products[0]

	assert.Equal(t, "TRIAC", parent.Attributes.Value(AttrDimmability))
	assert.Equal(t, "Andrea Tosetto", parent.Attributes.Value("Designer"))
	assert.Equal(t, "IP20", parent.IPRating)
	assert.Equal(t, "max 250cm", parent.CableLength)
	require.NotNil(t, parent.Dimensions)
	assert.Equal(t, 30.0, parent.Dimensions.Height)
}

func TestReconcileSimpleWhenNoMatch(t *testing.T) {
	s := kellyScrape("Bianco Opaco – 9010")
	s.Slug = "unknown-product"
	res := kellyEngine().Reconcile(s)

	require.Len(t, res.Products, 1)
	p := res.Products[0]
	assert.Equal(t, model.TypeSimple, p.Type)
	assert.Equal(t, "unknown-product", p.SKU)
	assert.Equal(t, "Kelly", p.Name)
	assert.Empty(t, p.CableLength)
}

func TestReconcileSimpleWhenNoRowMaps(t *testing.T) {
	res := kellyEngine().Reconcile(kellyScrape("Unknown Color"))

	require.Len(t, res.Products, 1)
	assert.Equal(t, model.TypeSimple, res.Products[0].Type)
	assert.Equal(t, "kelly", res.Products[0].SKU)
	assert.Len(t, res.Warnings, 2)
}

func TestReconcileSimpleWhenPriceListHasNoVariants(t *testing.T) {
	reg := pricelist.NewRegistry(model.PriceListProduct{BaseSKU: "14126", ProductName: "Kelly small dome 50", URLSlug: "kelly"})
	res := New(reg, nil).Reconcile(kellyScrape("Bianco Opaco – 9010"))

	require.Len(t, res.Products, 1)
	assert.Equal(t, model.TypeSimple, res.Products[0].Type)
	assert.Equal(t, "kelly", res.Products[0].SKU)
	assert.Empty(t, res.Warnings)
}

func TestReconcileWithoutSlug(t *testing.T) {
	res := kellyEngine().Reconcile(model.SiteScrape{})
	assert.Empty(t, res.Products)
	assert.Len(t, res.Warnings, 1)
}

func TestReconcileVibiaByCode(t *testing.T) {
	reg := pricelist.NewRegistry(model.PriceListProduct{
		BaseSKU: "0162", ProductName: "Circus", URLSlug: "circus",
		Variants: []model.PriceListVariant{
			{SKU: "0162/1", SurfaceNameDE: "Schwarz", LEDNameDE: "2700 K", ControlNameDE: "DALI-2", PriceEUR: 360},
		},
	})
	res := New(reg, nil).Reconcile(model.SiteScrape{
		Slug:         "circus",
		Manufacturer: model.Vibia,
		Name:         "Circus",
		VariantRows:  []model.VariantRow{model.NewVariantRow("Code", "0162/1")},
	})

	require.Len(t, res.Products, 2)
	assert.Equal(t, "Circus Schwarz 2700 K DALI-2", res.Products[1].Name)
	assert.Equal(t, "DALI-2", res.Products[1].VariationAttributes.Value(AttrControl))
}
