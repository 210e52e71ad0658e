package reconcile

import "lightcat/internal/model"

// Attribute keys written from price-list data.
const (
	AttrLightSource = "Light source"
	AttrDimmability = "Dimmbarkeit"
	AttrVoltage     = "Voltage"
	AttrIPRating    = "IP Rating"
)

// enrichPass copies one price-list field into the attribute map. Passes run
// in order and never overwrite a key the site already provided.
type enrichPass struct {
	key   string
	value func(*model.PriceListProduct) string
}

var enrichPasses = []enrichPass{
	{AttrLightSource, func(p *model.PriceListProduct) string { return p.LightSource }},
	{AttrDimmability, func(p *model.PriceListProduct) string { return p.Dimmability }},
	{AttrVoltage, func(p *model.PriceListProduct) string { return p.Voltage }},
	{AttrIPRating, func(p *model.PriceListProduct) string { return p.IPRating }},
}

// EnrichAttributes fills attribute keys the site left out from the
// price-list product and returns the cable length to use. Site values win
// everywhere, cable length included. attrs is not modified.
func EnrichAttributes(attrs *model.Attributes, cableLength string, p *model.PriceListProduct) (*model.Attributes, string) {
	out := attrs.Clone()
	if p == nil {
		return out, cableLength
	}
	for _, pass := range enrichPasses {
		if v := pass.value(p); v != "" {
			out.SetIfMissing(pass.key, v)
		}
	}
	if cableLength == "" {
		cableLength = p.CableLength
	}
	return out, cableLength
}
