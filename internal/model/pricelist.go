package model

// PriceListVariant is one priced configuration from a price-list document.
// Lodes variants carry a ColorCode; Vibia variants carry surface, LED and
// control codes instead.
type PriceListVariant struct {
	SKU         string  `json:"sku"`
	ColorCode   string  `json:"color_code,omitempty"`
	ColorNameEN string  `json:"color_name_en,omitempty"`
	ColorNameDE string  `json:"color_name_de,omitempty"`
	PriceEUR    float64 `json:"price_eur"`

	SurfaceCode   string `json:"surface_code,omitempty"`
	SurfaceNameEN string `json:"surface_name_en,omitempty"`
	SurfaceNameDE string `json:"surface_name_de,omitempty"`
	LEDCode       string `json:"led_code,omitempty"`
	LEDNameEN     string `json:"led_name_en,omitempty"`
	LEDNameDE     string `json:"led_name_de,omitempty"`
	ControlCode   string `json:"control_code,omitempty"`
	ControlNameEN string `json:"control_name_en,omitempty"`
	ControlNameDE string `json:"control_name_de,omitempty"`
}

type PriceListProduct struct {
	BaseSKU     string             `json:"base_sku"`
	ProductName string             `json:"product_name"`
	URLSlug     string             `json:"url_slug"`
	Variants    []PriceListVariant `json:"variants"`
	CableLength string             `json:"cable_length,omitempty"`
	LightSource string             `json:"light_source,omitempty"`
	Dimmability string             `json:"dimmability,omitempty"`
	Voltage     string             `json:"voltage,omitempty"`
	IPRating    string             `json:"ip_rating,omitempty"`
	Dimensions  *Dimensions        `json:"dimensions"`

	CategoryPrefix    string `json:"category_prefix,omitempty"`
	ProductTypeSuffix string `json:"product_type_suffix,omitempty"`
	Designer          string `json:"designer,omitempty"`
}

// Cell is one header/value pair of a scraped variant table row.
type Cell struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// VariantRow keeps the column order of the site table.
type VariantRow []Cell

func NewVariantRow(pairs ...string) VariantRow {
	row := make(VariantRow, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		row = append(row, Cell{Header: pairs[i], Value: pairs[i+1]})
	}
	return row
}

func (r VariantRow) Get(header string) (string, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return "", false
}

func (r VariantRow) Headers() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Header
	}
	return out
}

// SiteScrape is what the site attribute extractor hands to reconciliation.
type SiteScrape struct {
	Slug         string       `json:"slug"`
	Manufacturer Manufacturer `json:"manufacturer"`
	Language     string       `json:"language"`
	SourceURL    string       `json:"source_url"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Images       []string     `json:"images"`
	Categories   []string     `json:"categories"`
	Attributes   *Attributes  `json:"attributes"`
	VariantRows  []VariantRow `json:"variant_rows"`
	DatasheetURL string       `json:"datasheet_url,omitempty"`
	Weight       *float64     `json:"weight,omitempty"`
	CableLength  string       `json:"cable_length,omitempty"`
}
