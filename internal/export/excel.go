package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"lightcat/internal/model"
)

const (
	excelSheet      = "Products"
	excelAttrPrefix = "Attr: "
)

var excelBaseHeaders = []string{
	"SKU", "Name", "Type", "Parent SKU", "Manufacturer", "Description",
	"Short Description", "Regular Price", "Sale Price", "Stock", "Weight",
	"Categories", "Images", "Cable Length", "Available Colors", "Datasheet",
}

// ExcelRow projects p onto the review sheet. Prices and quantities stay
// numeric; attributes are returned separately keyed by name.
func ExcelRow(p model.Product) ([]any, *model.Attributes) {
	row := []any{
		p.SKU,
		CleanName(p.Name),
		string(p.Type),
		p.ParentSKU,
		string(p.Manufacturer),
		p.Description,
		p.ShortDescription,
		optional(p.RegularPrice),
		optional(p.SalePrice),
		optional(p.Stock),
		optional(p.Weight),
		strings.Join(p.Categories, ", "),
		strings.Join(p.AllImages(), "\n"),
		p.CableLength,
		p.AvailableColors,
		p.DatasheetURL,
	}
	return row, p.Attributes.Clone()
}

func optional[T any](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}

// excelHeaders appends one "Attr: <key>" column per attribute key seen in
// the batch, in first-seen order.
func excelHeaders(products []model.Product) ([]string, []string) {
	var keys []string
	for _, p := range products {
		for _, k := range p.Attributes.Keys() {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	headers := slices.Clone(excelBaseHeaders)
	for _, k := range keys {
		headers = append(headers, excelAttrPrefix+k)
	}
	return headers, keys
}

// WriteExcel writes a single-sheet workbook for manual review.
func WriteExcel(path string, products []model.Product) error {
	if len(products) == 0 {
		return ErrNoProducts
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return err
	}
	headers, keys := excelHeaders(products)
	if err := setRow(f, 1, toAny(headers)); err != nil {
		return err
	}
	for i, p := range products {
		row, attrs := ExcelRow(p)
		for _, k := range keys {
			row = append(row, attrs.Value(k))
		}
		if err := setRow(f, i+2, row); err != nil {
			return fmt.Errorf("row %s: %w", p.SKU, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	return f.SetSheetRow(excelSheet, cell, &values)
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
