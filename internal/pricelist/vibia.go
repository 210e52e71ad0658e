package pricelist

import (
	"fmt"
	"strings"
	"unicode"

	"lightcat/internal/codes"
	"lightcat/internal/model"
)

const (
	vibiaDefaultSurface = "10"
	vibiaDefaultLED     = "1"
)

// ParseVibiaPage reads a Vibia page where a "0162 _ _ / _ _" header opens a
// model and each following "/ _ 1 ... 360,00 €" line is a priced variant.
// The surface is not printed on these pages and defaults to black.
func ParseVibiaPage(text string) PageResult {
	var res PageResult
	current := ""
	for _, line := range strings.Split(text, "\n") {
		if m := VibiaPattern.SKU.FindStringSubmatch(line); m != nil {
			current = m[1]
			continue
		}
		if current == "" {
			continue
		}
		m := VibiaPattern.Price.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		price, ok := parseCommaPrice(m[2], m[3])
		if !ok {
			continue
		}
		control := strings.TrimSpace(m[1])
		led := vibiaDefaultLED
		if len(control) > 1 && unicode.IsDigit(rune(control[0])) {
			led = control[:1]
		}

		surface, _ := codes.ResolveVibiaSurface(vibiaDefaultSurface)
		ledName, ledOK := codes.ResolveVibiaLED(led)
		ctrlName, ctrlOK := codes.ResolveVibiaControl(control)
		full := current + "/" + control
		if !ledOK || !ctrlOK {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown LED/control code %s for SKU %s", control, full))
		}

		res.Rows = append(res.Rows, Row{
			BaseSKU: current,
			Variant: model.PriceListVariant{
				SKU:           full,
				PriceEUR:      price,
				SurfaceCode:   vibiaDefaultSurface,
				SurfaceNameEN: surface.EN,
				SurfaceNameDE: surface.DE,
				LEDCode:       led,
				LEDNameEN:     ledName.EN,
				LEDNameDE:     ledName.DE,
				ControlCode:   control,
				ControlNameEN: ctrlName.EN,
				ControlNameDE: ctrlName.DE,
			},
		})
	}
	return res
}
