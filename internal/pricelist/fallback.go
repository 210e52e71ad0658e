package pricelist

import (
	"lightcat/internal/codes"
	"lightcat/internal/model"
)

const (
	kellySlug        = "kelly"
	kellyBulb        = "E27 LED B / L max 12cm\n3× 25 W"
	kellyClusterLED  = "LED\n2700 K\n7 W\n1280 lm\n350 mA\nCRI 90\nMacAdam 3-Step\nLED and driver included"
	kellyVoltage     = "220-240V"
	kellyIP          = "IP20"
	kellyDimmability = "TRIAC"
)

func kellyVariants(base string, prices map[string]float64, colorCodes ...string) []model.PriceListVariant {
	out := make([]model.PriceListVariant, 0, len(colorCodes))
	for _, c := range colorCodes {
		// Cluster codes carry the LED temperature; the finish name is the plain one.
		color := codes.ResolveLodesColor(c[:2] + "00")
		out = append(out, model.PriceListVariant{
			SKU:         base + " " + c,
			ColorCode:   c,
			ColorNameEN: color.NameEN,
			ColorNameDE: color.NameDE,
			PriceEUR:    prices[c],
		})
	}
	return out
}

func kellyProduct(base, name, cable, light string, variants []model.PriceListVariant) model.PriceListProduct {
	return model.PriceListProduct{
		BaseSKU:     base,
		ProductName: name,
		URLSlug:     kellySlug,
		Variants:    variants,
		CableLength: cable,
		LightSource: light,
		Dimmability: kellyDimmability,
		Voltage:     kellyVoltage,
		IPRating:    kellyIP,
	}
}

// KellyFallback is the Kelly family as printed in the 2025 Lodes price
// list. It is used when no parsed price-list cache is available.
func KellyFallback() []model.PriceListProduct {
	dome := func(base, name string, std, premium float64) model.PriceListProduct {
		return kellyProduct(base, name, "max 250cm", kellyBulb, kellyVariants(base,
			map[string]float64{"1000": std, "2000": std, "3500": premium, "4500": premium},
			"1000", "2000", "3500", "4500"))
	}
	sphere := func(base, name string, std, premium float64) model.PriceListProduct {
		return kellyProduct(base, name, "max 250cm", kellyBulb, kellyVariants(base,
			map[string]float64{"1000": std, "3500": premium},
			"1000", "3500"))
	}

	small := dome("14126", "Kelly small dome 50", 572, 607)
	small.Dimensions = &model.Dimensions{Length: 50, Width: 50, Height: 30}

	return []model.PriceListProduct{
		small,
		dome("14127", "Kelly medium dome 60", 883, 913),
		dome("14128", "Kelly large dome 80", 1102, 1153),
		sphere("14122", "Kelly small sphere 40", 913, 939),
		sphere("14123", "Kelly medium sphere 50", 1214, 1240),
		sphere("14124", "Kelly large sphere 80", 3264, 3326),
		kellyProduct("14711", "Kelly Cluster", "max 400cm", kellyClusterLED, kellyVariants("14711",
			map[string]float64{"1027": 388, "2027": 388, "3527": 403, "4527": 403},
			"1027", "2027", "3527", "4527")),
	}
}
