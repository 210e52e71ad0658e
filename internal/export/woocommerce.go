package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lightcat/internal/model"
)

var ErrNoProducts = errors.New("cannot export empty product list")

const (
	csvSeparator = ';'
	utf8BOM      = "\ufeff"
	taxClass     = "parent"
)

// Attribute slots of the shop import, in column order.
var attributeSlots = []string{"Farbe", "Lichtfarbe", "Dimmbarkeit", "Montage"}

type rowContext struct {
	p      model.Product
	parent *model.Product
}

func (r rowContext) variation() bool { return r.p.Type == model.TypeVariation }

// parentOnly blanks a value on variation rows; those inherit it from the
// parent in the shop.
func parentOnly(f func(rowContext) string) func(rowContext) string {
	return func(r rowContext) string {
		if r.variation() {
			return ""
		}
		return f(r)
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func constant(v string) func(rowContext) string {
	return func(rowContext) string { return v }
}

func attr(key string) func(rowContext) string {
	return func(r rowContext) string { return r.p.Attributes.Value(key) }
}

func firstAttr(keys ...string) func(rowContext) string {
	return func(r rowContext) string {
		for _, k := range keys {
			if v := r.p.Attributes.Value(k); v != "" {
				return v
			}
		}
		return ""
	}
}

type column struct {
	header string
	value  func(rowContext) string
}

var wooColumns = buildColumns()

func buildColumns() []column {
	cols := []column{
		{"ID", constant("")},
		{"Typ", func(r rowContext) string { return string(r.p.Type) }},
		{"SKU", func(r rowContext) string { return r.p.SKU }},
		{"Name", func(r rowContext) string { return VariationDisplayName(r.p, r.parent) }},
		{"Veröffentlicht", constant("1")},
		{"Ist hervorgehoben?", constant("0")},
		{"Sichtbarkeit im Katalog", constant("visible")},
		{"Kurzbeschreibung", func(r rowContext) string { return ShortDescriptionPlain(r.p) }},
		{"Beschreibung", func(r rowContext) string { return r.p.Description }},
		{"Datum, an dem Angebotspreis beginnt", constant("")},
		{"Datum, an dem Angebotspreis endet", constant("")},
		{"Steuerstatus", constant("taxable")},
		{"Steuerklasse", constant(taxClass)},
		{"Vorrätig?", constant("1")},
		{"Lager", func(r rowContext) string {
			if r.p.Stock == nil {
				return ""
			}
			return strconv.Itoa(*r.p.Stock)
		}},
		{"Geringe Lagermenge", constant("")},
		{"Lieferrückstände erlaubt?", constant("0")},
		{"Nur einzeln verkaufen?", constant("0")},
		{"Gewicht (kg)", func(r rowContext) string { return FormatGermanDecimal(r.p.Weight, 2) }},
		{"Länge (cm)", dimension(func(d *model.Dimensions) float64 { return d.Length })},
		{"Breite (cm)", dimension(func(d *model.Dimensions) float64 { return d.Width })},
		{"Höhe (cm)", dimension(func(d *model.Dimensions) float64 { return d.Height })},
		{"Kundenrezensionen erlauben?", func(r rowContext) string { return flag(!r.variation()) }},
		{"Hinweis zum Kauf", constant("")},
		{"Angebotspreis", func(r rowContext) string { return FormatGermanDecimal(r.p.SalePrice, 2) }},
		{"Regulärer Preis", func(r rowContext) string { return FormatGermanDecimal(r.p.RegularPrice, 2) }},
		{"Kategorien", parentOnly(func(r rowContext) string { return strings.Join(r.p.Categories, ", ") })},
		{"Schlagwörter", parentOnly(tags)},
		{"Versandklasse", constant("")},
		{"Bilder", func(r rowContext) string { return strings.Join(r.p.AllImages(), ", ") }},
		{"Downloadlimit", constant("")},
		{"Ablauftage des Downloads", constant("")},
		{"Übergeordnetes Produkt", func(r rowContext) string { return r.p.ParentSKU }},
		{"Gruppierte Produkte", constant("")},
		{"Zusatzverkäufe", constant("")},
		{"Cross-Sells (Querverkäufe)", constant("")},
		{"Externe URL", constant("")},
		{"Button-Text", constant("")},
		{"Position", constant("0")},
		{"GTIN, UPC, EAN oder ISBN", func(r rowContext) string { return r.p.EAN }},
		{"Marken", func(r rowContext) string { return brand(r.p.Manufacturer) }},
	}

	for i, name := range attributeSlots {
		n := strconv.Itoa(i + 1)
		cols = append(cols,
			column{"Attribut " + n + " Name", constant(name)},
			column{"Attribut " + n + " Wert(e)", func(r rowContext) string { return attributeValue(r.p, name) }},
			column{"Attribut " + n + " Sichtbar", parentOnly(constant("1"))},
			column{"Attribut " + n + " Global", constant("")},
		)
	}

	return append(cols,
		column{"Parent SKU", func(r rowContext) string { return r.p.ParentSKU }},
		column{"Lieferzeit", constant("")},
		column{"Übergkategorie", parentOnly(func(r rowContext) string {
			if len(r.p.Categories) == 0 {
				return ""
			}
			return r.p.Categories[0]
		})},
		column{"Kategorienstruktur", parentOnly(func(r rowContext) string { return strings.Join(r.p.Categories, " > ") })},
		column{"Anzahl Fotos", func(r rowContext) string { return strconv.Itoa(len(r.p.AllImages())) }},
		column{"Produktnummer", func(r rowContext) string { return r.p.SKU }},
		column{"Produkttyp", func(r rowContext) string { return r.p.InstallationType }},
		column{"Designer", attr("Designer")},
		column{"Produktfamilie", func(r rowContext) string {
			if r.parent != nil {
				return FamilyName(r.parent.Name)
			}
			return FamilyName(r.p.Name)
		}},
		column{"Material", func(r rowContext) string {
			if r.p.Material != "" {
				return r.p.Material
			}
			return r.p.Attributes.Value("Material")
		}},
		column{"Diffusor", firstAttr("Diffusor", "Diffuser")},
		column{"Produktfarben", parentOnly(func(r rowContext) string { return TranslateColorsToGerman(r.p.AvailableColors) })},
		column{"Seillänge", parentOnly(func(r rowContext) string { return r.p.CableLength })},
		column{"Lichtquelle", firstAttr("Light source", "Lichtquelle")},
		column{"Dimmbarkeit", firstAttr("Dimmbarkeit", "Dimmability")},
		column{"IP-Schutz", func(r rowContext) string {
			if r.p.IPRating != "" {
				return r.p.IPRating
			}
			return r.p.Attributes.Value("IP Rating")
		}},
		column{"Stoßfestigkeit", firstAttr("IK Rating", "Stoßfestigkeit")},
		column{"Spannung", firstAttr("Voltage", "Spannung")},
		column{"Zertifizierung", firstAttr("Certification", "Zertifizierung")},
		column{"Information", parentOnly(func(r rowContext) string { return r.p.ProductNotes })},
		column{"Datenblatt", func(r rowContext) string { return r.p.DatasheetURL }},
		column{"Montageanleitung", func(r rowContext) string { return r.p.InstallationManualURL }},
	)
}

func dimension(get func(*model.Dimensions) float64) func(rowContext) string {
	return func(r rowContext) string {
		if r.p.Dimensions == nil {
			return ""
		}
		v := get(r.p.Dimensions)
		if v == 0 {
			return ""
		}
		return FormatGermanDecimal(&v, 1)
	}
}

func brand(m model.Manufacturer) string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

// tags lists brand, family and installation type.
func tags(r rowContext) string {
	var out []string
	for _, t := range []string{brand(r.p.Manufacturer), FamilyName(r.p.Name), r.p.InstallationType} {
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

// attributeValue fills one attribute slot. Variation attributes win; the
// parent-level fields are the fallback.
func attributeValue(p model.Product, slot string) string {
	if v := p.VariationAttributes.Value(slot); v != "" {
		if slot == AttrColor {
			return TranslateColorsToGerman(v)
		}
		return v
	}
	switch slot {
	case "Farbe":
		return TranslateColorsToGerman(p.AvailableColors)
	case "Lichtfarbe":
		if p.LightSpecs != nil {
			return p.LightSpecs.Kelvin
		}
	case "Dimmbarkeit":
		return p.Attributes.Value("Dimmbarkeit")
	case "Montage":
		return p.InstallationType
	}
	return ""
}

// WooCommerceHeader returns the CSV header row.
func WooCommerceHeader() []string {
	out := make([]string, len(wooColumns))
	for i, c := range wooColumns {
		out[i] = c.header
	}
	return out
}

// WooCommerceRow projects p onto the shop import columns. parent is the
// variable product of a variation, or nil.
func WooCommerceRow(p model.Product, parent *model.Product) []string {
	r := rowContext{p: p, parent: parent}
	out := make([]string, len(wooColumns))
	for i, c := range wooColumns {
		out[i] = c.value(r)
	}
	return out
}

// AttributeColumns returns the attribute slot cells of p keyed by header.
func AttributeColumns(p model.Product) map[string]string {
	r := rowContext{p: p}
	out := map[string]string{}
	for _, c := range wooColumns {
		if strings.HasPrefix(c.header, "Attribut ") {
			out[c.header] = c.value(r)
		}
	}
	return out
}

// parents indexes the variable products of a batch by SKU.
func parents(products []model.Product) map[string]*model.Product {
	out := map[string]*model.Product{}
	for i := range products {
		if products[i].Type == model.TypeVariable {
			if _, ok := out[products[i].SKU]; !ok {
				out[products[i].SKU] = &products[i]
			}
		}
	}
	return out
}

// WriteWooCommerceCSV writes a semicolon separated, BOM prefixed CSV.
func WriteWooCommerceCSV(w io.Writer, products []model.Product) error {
	if len(products) == 0 {
		return ErrNoProducts
	}
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = csvSeparator
	if err := cw.Write(WooCommerceHeader()); err != nil {
		return err
	}
	byParent := parents(products)
	for _, p := range products {
		var parent *model.Product
		if p.Type == model.TypeVariation {
			parent = byParent[p.ParentSKU]
		}
		if err := cw.Write(WooCommerceRow(p, parent)); err != nil {
			return fmt.Errorf("write row %s: %w", p.SKU, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWooCommerceCSVFile writes the CSV to path, creating parent
// directories.
func WriteWooCommerceCSVFile(path string, products []model.Product) error {
	if len(products) == 0 {
		return ErrNoProducts
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWooCommerceCSV(f, products); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}
