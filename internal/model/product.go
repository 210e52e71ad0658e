package model

import (
	"errors"
	"fmt"
	"slices"
)

type Manufacturer string

const (
	Lodes Manufacturer = "lodes"
	Vibia Manufacturer = "vibia"
)

type ProductType string

const (
	TypeSimple    ProductType = "simple"
	TypeVariable  ProductType = "variable"
	TypeVariation ProductType = "variation"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeSimple, TypeVariable, TypeVariation:
		return true
	}
	return false
}

type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type LightSpecs struct {
	Wattage string `json:"wattage,omitempty"`
	Kelvin  string `json:"kelvin,omitempty"`
	Lumen   string `json:"lumen,omitempty"`
	CRI     string `json:"cri,omitempty"`
}

func (l *LightSpecs) Empty() bool {
	return l == nil || (l.Wattage == "" && l.Kelvin == "" && l.Lumen == "" && l.CRI == "")
}

// Product is a reconciled catalog record. Use NewSimple, NewVariable or
// NewVariation so the kind-specific fields are set consistently.
type Product struct {
	SKU          string       `json:"sku"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Manufacturer Manufacturer `json:"manufacturer"`
	Categories   []string     `json:"categories"`
	Attributes   *Attributes  `json:"attributes"`
	Images       []string     `json:"images"`

	// ProjectImages holds installation photos split off Images.
	ProjectImages []string `json:"project_images,omitempty"`

	Type                ProductType `json:"product_type"`
	ParentSKU           string      `json:"parent_sku,omitempty"`
	VariationAttributes *Attributes `json:"variation_attributes,omitempty"`

	RegularPrice *float64    `json:"regular_price,omitempty"`
	SalePrice    *float64    `json:"sale_price,omitempty"`
	Stock        *int        `json:"stock,omitempty"`
	EAN          string      `json:"ean,omitempty"`
	Weight       *float64    `json:"weight,omitempty"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`

	InstallationType      string      `json:"installation_type,omitempty"`
	Material              string      `json:"material,omitempty"`
	IPRating              string      `json:"ip_rating,omitempty"`
	LightSpecs            *LightSpecs `json:"light_specs,omitempty"`
	DatasheetURL          string      `json:"datasheet_url,omitempty"`
	CableLength           string      `json:"cable_length,omitempty"`
	AvailableColors       string      `json:"available_colors,omitempty"`
	InstallationManualURL string      `json:"installation_manual_url,omitempty"`
	ProductNotes          string      `json:"product_notes,omitempty"`

	ScrapedLanguage    string `json:"scraped_language"`
	TranslatedToGerman bool   `json:"translated_to_german"`
	ShortDescription   string `json:"short_description,omitempty"`
	OriginalName       string `json:"original_name,omitempty"`
}

func NewSimple(p Product) Product {
	p.Type = TypeSimple
	p.ParentSKU = ""
	p.VariationAttributes = nil
	return p.withDefaults()
}

func NewVariable(p Product, variationAttrs *Attributes) Product {
	p.Type = TypeVariable
	p.ParentSKU = ""
	p.VariationAttributes = variationAttrs
	return p.withDefaults()
}

func NewVariation(p Product, parentSKU string, variationAttrs *Attributes) Product {
	p.Type = TypeVariation
	p.ParentSKU = parentSKU
	p.VariationAttributes = variationAttrs
	return p.withDefaults()
}

func (p Product) withDefaults() Product {
	if p.Attributes == nil {
		p.Attributes = &Attributes{}
	}
	if p.ScrapedLanguage == "" {
		p.ScrapedLanguage = "en"
	}
	return p
}

func (p Product) IsVariation() bool { return p.Type == TypeVariation }

// Price returns the regular price or false.
func (p Product) Price() (float64, bool) {
	if p.RegularPrice == nil {
		return 0, false
	}
	return *p.RegularPrice, true
}

var (
	ErrInvalidType      = errors.New("invalid product type")
	ErrMissingParentSKU = errors.New("variation without parent sku")
	ErrOrphanVariation  = errors.New("variation parent not found")
	ErrEmptyVariable    = errors.New("variable product without variations")
)

func (p Product) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%s: %w %q", p.SKU, ErrInvalidType, p.Type)
	}
	if p.Type == TypeVariation && p.ParentSKU == "" {
		return fmt.Errorf("%s: %w", p.SKU, ErrMissingParentSKU)
	}
	return nil
}

// ValidateHierarchy checks that every variation points at exactly one
// variable sibling and that every variable owns at least one variation.
func ValidateHierarchy(products []Product) error {
	parents := map[string]int{}
	children := map[string]int{}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		switch p.Type {
		case TypeVariable:
			parents[p.SKU]++
		case TypeVariation:
			children[p.ParentSKU]++
		}
	}
	for _, p := range products {
		if p.Type == TypeVariation && parents[p.ParentSKU] != 1 {
			return fmt.Errorf("%s -> %s: %w", p.SKU, p.ParentSKU, ErrOrphanVariation)
		}
	}
	for sku := range parents {
		if children[sku] == 0 {
			return fmt.Errorf("%s: %w", sku, ErrEmptyVariable)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can derive new records without
// touching the original.
func (p Product) Clone() Product {
	c := p
	c.Categories = slices.Clone(p.Categories)
	c.Images = slices.Clone(p.Images)
	c.ProjectImages = slices.Clone(p.ProjectImages)
	if p.Attributes != nil {
		c.Attributes = p.Attributes.Clone()
	}
	if p.VariationAttributes != nil {
		c.VariationAttributes = p.VariationAttributes.Clone()
	}
	c.RegularPrice = clonePtr(p.RegularPrice)
	c.SalePrice = clonePtr(p.SalePrice)
	c.Stock = clonePtr(p.Stock)
	c.Weight = clonePtr(p.Weight)
	c.Dimensions = clonePtr(p.Dimensions)
	c.LightSpecs = clonePtr(p.LightSpecs)
	return c
}

// AllImages lists studio shots first, then project photos.
func (p Product) AllImages() []string {
	return slices.Concat(p.Images, p.ProjectImages)
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func Ptr[T any](v T) *T { return &v }
