package pricelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightcat/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSKUMapping(t *testing.T) {
	path := writeFile(t, "mapping.json", `{
		"14126": {"product_name": "Kelly small dome 50", "url_slug": "kelly"},
		"14300": {"product_name": "Aile", "url_slug": "aile", "note": "ignored"}
	}`)

	m, err := LoadSKUMapping(path, LodesPattern.MappingKey, nil)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, MappingEntry{ProductName: "Kelly small dome 50", URLSlug: "kelly"}, m["14126"])
}

func TestLoadSKUMappingMissingFileIsEmpty(t *testing.T) {
	m, err := LoadSKUMapping(filepath.Join(t.TempDir(), "nope.json"), LodesPattern.MappingKey, nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestParseSKUMappingRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"invalid json":      `{"14126": `,
		"not an object":     `["14126"]`,
		"null document":     `null`,
		"null entry":        `{"14126": null}`,
		"bad key":           `{"kelly": {"product_name": "Kelly", "url_slug": "kelly"}}`,
		"missing name":      `{"14126": {"url_slug": "kelly"}}`,
		"missing slug":      `{"14126": {"product_name": "Kelly"}}`,
		"non string field":  `{"14126": {"product_name": 12, "url_slug": "kelly"}}`,
		"empty field value": `{"14126": {"product_name": "", "url_slug": "kelly"}}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSKUMapping([]byte(data), LodesPattern.MappingKey)
			assert.ErrorIs(t, err, ErrInvalidMapping)
		})
	}
}

func TestLoadSKUMappingRejectsNullFile(t *testing.T) {
	path := writeFile(t, "sku_mapping.json", "null\n")
	_, err := LoadSKUMapping(path, LodesPattern.MappingKey, nil)
	assert.ErrorIs(t, err, ErrInvalidMapping)
}

func TestParseSKUMappingVibiaKeys(t *testing.T) {
	_, err := ParseSKUMapping([]byte(`{"14126": {"product_name": "X", "url_slug": "x"}}`), VibiaPattern.MappingKey)
	assert.ErrorIs(t, err, ErrInvalidMapping)

	m, err := ParseSKUMapping([]byte(`{"0162": {"product_name": "Circus", "url_slug": "circus"}}`), VibiaPattern.MappingKey)
	require.NoError(t, err)
	assert.Equal(t, "circus", m["0162"].URLSlug)
}

func TestLoadRegistryFallsBackWhenMissing(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"), KellyFallback(), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())

	reg, err = LoadRegistry("", KellyFallback(), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())
}

func TestLoadRegistryFileReplacesFallback(t *testing.T) {
	path := writeFile(t, "prices.json", `{
		"metadata": {"manufacturer": "lodes"},
		"products": {
			"14300": {"product_name": "Aile", "url_slug": "aile", "variants": [
				{"sku": "14300 2000", "color_code": "2000", "color_name_en": "Matte Black", "color_name_de": "Schwarz Matt", "price_eur": 410}
			]}
		}
	}`)

	reg, err := LoadRegistry(path, KellyFallback(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	p, ok := reg.ByBaseSKU("14300")
	require.True(t, ok)
	assert.Equal(t, "14300", p.BaseSKU)
	_, ok = reg.ByBaseSKU("14126")
	assert.False(t, ok)
}

func TestParseRegistryBareMapKeepsOrder(t *testing.T) {
	reg, err := ParseRegistry([]byte(`{
		"14127": {"base_sku": "14127", "product_name": "Kelly medium dome 60", "url_slug": "kelly", "variants": []},
		"metadata": {"source_pdf": "x.pdf"},
		"14126": {"base_sku": "14126", "product_name": "Kelly small dome 50", "url_slug": "kelly", "variants": []}
	}`))
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "14127", all[0].BaseSKU)
	assert.Equal(t, "14126", all[1].BaseSKU)
}

func TestParseRegistryRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"invalid json":  `{"14126": {`,
		"array":         `[]`,
		"bad product":   `{"14126": "kelly"}`,
		"invalid price": `{"14126": {"variants": [{"sku": "14126 1000", "price_eur": 0}]}}`,
		"huge price":    `{"14126": {"variants": [{"sku": "14126 1000", "price_eur": 250000}]}}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidPriceList)
		})
	}
}

func TestLoadRegistryMalformedFileIsError(t *testing.T) {
	path := writeFile(t, "prices.json", `not json`)
	_, err := LoadRegistry(path, KellyFallback(), nil)
	assert.ErrorIs(t, err, ErrInvalidPriceList)
}

func TestDocumentRoundTripIsIdempotent(t *testing.T) {
	e := NewExtractor(model.Lodes, nil, nil)
	reg := NewRegistry(KellyFallback()...)
	path := filepath.Join(t.TempDir(), "out", "lodes.json")

	require.NoError(t, WriteJSONAtomic(path, e.Document("kelly.pdf", reg)))

	first, err := LoadRegistry(path, nil, nil)
	require.NoError(t, err)
	second, err := LoadRegistry(path, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, reg.All(), first.All())
	assert.Equal(t, first.All(), second.All())

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDocumentMetadataTotals(t *testing.T) {
	e := NewExtractor(model.Lodes, nil, nil)
	doc := e.Document("kelly.pdf", NewRegistry(KellyFallback()...))
	assert.Equal(t, 7, doc.Metadata.TotalProducts)
	assert.Equal(t, 4+4+4+2+2+2+4, doc.Metadata.TotalVariants)
	assert.Equal(t, "lodes", doc.Metadata.Manufacturer)
	assert.Equal(t, ParserVersion, doc.Metadata.ParserVersion)
}

func TestKellyFallback(t *testing.T) {
	products := KellyFallback()
	require.Len(t, products, 7)

	small := products[0]
	assert.Equal(t, "14126", small.BaseSKU)
	assert.Equal(t, "kelly", small.URLSlug)
	require.NotNil(t, small.Dimensions)
	assert.Equal(t, 50.0, small.Dimensions.Length)

	cluster := products[6]
	assert.Equal(t, "Kelly Cluster", cluster.ProductName)
	assert.Equal(t, "max 400cm", cluster.CableLength)
	require.Len(t, cluster.Variants, 4)
	assert.Equal(t, "Weiß Matt", cluster.Variants[0].ColorNameDE)

	for _, p := range products {
		for _, v := range p.Variants {
			assert.True(t, ValidPrice(v.PriceEUR), v.SKU)
		}
	}
}

func TestRegistryLookups(t *testing.T) {
	reg := NewRegistry(KellyFallback()...)

	price, ok := reg.VariantPrice("14126 3500")
	require.True(t, ok)
	assert.Equal(t, 607.0, price)

	_, ok = reg.VariantPrice("14126 9999")
	assert.False(t, ok)
	_, ok = reg.VariantPrice("99999 1000")
	assert.False(t, ok)

	assert.Len(t, reg.BySlug("kelly"), 7)
	assert.Empty(t, reg.BySlug("aile"))

	assert.Len(t, reg.Candidates("kelly"), 7)
	assert.Len(t, reg.Candidates("sphere"), 3)
	assert.Nil(t, reg.Candidates(""))

	small, _ := reg.ByBaseSKU("14126")
	assert.Equal(t, "Weiß Matt, Schwarz Matt, Bronze, Champagner Matt", Colors(small))
}

func TestNewRegistryReplacesInPlace(t *testing.T) {
	reg := NewRegistry(
		model.PriceListProduct{BaseSKU: "1", ProductName: "a"},
		model.PriceListProduct{BaseSKU: "2", ProductName: "b"},
		model.PriceListProduct{BaseSKU: "1", ProductName: "c"},
	)
	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "c", all[0].ProductName)
}
