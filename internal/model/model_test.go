package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesKeepInsertionOrder(t *testing.T) {
	a := NewAttributes("Designer", "Andrea Tosetto", "Voltage", "220-240V")
	a.Set("IP Rating", "IP20")
	a.Set("Designer", "Someone Else")

	assert.Equal(t, []string{"Designer", "Voltage", "IP Rating"}, a.Keys())
	assert.Equal(t, "Someone Else", a.Value("Designer"))

	assert.False(t, a.SetIfMissing("Voltage", "110V"))
	assert.True(t, a.SetIfMissing("Light source", "E27"))
	assert.Equal(t, "220-240V", a.Value("Voltage"))

	a.Delete("Voltage")
	assert.Equal(t, []string{"Designer", "IP Rating", "Light source"}, a.Keys())
}

func TestAttributesZeroValueAndNil(t *testing.T) {
	var a Attributes
	assert.Equal(t, 0, a.Len())
	a.Set("k", "v")
	assert.Equal(t, "v", a.Value("k"))

	var nilAttrs *Attributes
	assert.Equal(t, 0, nilAttrs.Len())
	assert.False(t, nilAttrs.Has("k"))
	assert.Empty(t, nilAttrs.Keys())
}

func TestAttributesJSONRoundTripKeepsOrder(t *testing.T) {
	a := NewAttributes("z", "1", "a", "2", "m", "3")
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":"1","a":"2","m":"3"}`, string(b))
	assert.Equal(t, `{"z":"1","a":"2","m":"3"}`, string(b))

	var back Attributes
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []string{"z", "a", "m"}, back.Keys())
}

func TestAttributesCloneIsIndependent(t *testing.T) {
	a := NewAttributes("k", "v")
	c := a.Clone()
	c.Set("k", "changed")
	c.Set("new", "x")
	assert.Equal(t, "v", a.Value("k"))
	assert.False(t, a.Has("new"))
}

func TestConstructorsSetKind(t *testing.T) {
	s := NewSimple(Product{SKU: "kelly", ParentSKU: "x"})
	assert.Equal(t, TypeSimple, s.Type)
	assert.Empty(t, s.ParentSKU)
	assert.NotNil(t, s.Attributes)
	assert.Equal(t, "en", s.ScrapedLanguage)

	v := NewVariation(Product{SKU: "14126 1000"}, "14126", NewAttributes("Farbe", "Weiß Matt"))
	assert.Equal(t, TypeVariation, v.Type)
	assert.Equal(t, "14126", v.ParentSKU)
	assert.NoError(t, v.Validate())

	bad := NewVariation(Product{SKU: "x"}, "", nil)
	assert.ErrorIs(t, bad.Validate(), ErrMissingParentSKU)
}

func TestValidateHierarchy(t *testing.T) {
	parent := NewVariable(Product{SKU: "14126"}, nil)
	child := NewVariation(Product{SKU: "14126 1000"}, "14126", nil)

	tests := []struct {
		name     string
		products []Product
		wantErr  error
	}{
		{"valid", []Product{parent, child}, nil},
		{"simple only", []Product{NewSimple(Product{SKU: "kelly"})}, nil},
		{"orphan", []Product{child}, ErrOrphanVariation},
		{"empty variable", []Product{parent}, ErrEmptyVariable},
		{"duplicate parent", []Product{parent, parent, child}, ErrOrphanVariation},
		{"bad type", []Product{{SKU: "x", Type: "bundle"}}, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHierarchy(tt.products)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCloneDeepCopies(t *testing.T) {
	p := NewSimple(Product{
		SKU:          "kelly",
		Categories:   []string{"Pendant"},
		Attributes:   NewAttributes("Designer", "Andrea Tosetto"),
		RegularPrice: Ptr(572.0),
		Dimensions:   &Dimensions{Length: 50},
	})
	c := p.Clone()
	c.Categories[0] = "Wall"
	c.Attributes.Set("Designer", "x")
	*c.RegularPrice = 1
	c.Dimensions.Length = 1

	assert.Equal(t, "Pendant", p.Categories[0])
	assert.Equal(t, "Andrea Tosetto", p.Attributes.Value("Designer"))
	assert.Equal(t, 572.0, *p.RegularPrice)
	assert.Equal(t, 50.0, p.Dimensions.Length)
}

func TestAllImagesPutsStudioShotsFirst(t *testing.T) {
	p := NewSimple(Product{
		SKU:           "a-tube",
		Images:        []string{"studio.jpg"},
		ProjectImages: []string{"hotel.jpg", "bar.jpg"},
	})
	assert.Equal(t, []string{"studio.jpg", "hotel.jpg", "bar.jpg"}, p.AllImages())

	c := p.Clone()
	c.ProjectImages[0] = "changed.jpg"
	assert.Equal(t, "hotel.jpg", p.ProjectImages[0])
	assert.Empty(t, NewSimple(Product{}).AllImages())
}

func TestVariantRowLookup(t *testing.T) {
	row := NewVariantRow("Code", "14126 1000", "Kelly small dome 50", "Bianco Opaco – 9010")
	v, ok := row.Get("Kelly small dome 50")
	assert.True(t, ok)
	assert.Equal(t, "Bianco Opaco – 9010", v)
	assert.Equal(t, []string{"Code", "Kelly small dome 50"}, row.Headers())

	_, ok = row.Get("missing")
	assert.False(t, ok)
}
