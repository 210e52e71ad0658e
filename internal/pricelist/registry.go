package pricelist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"lightcat/internal/model"
)

// Registry is the read-only set of price-list products for one
// manufacturer, in document order. Build it once and share it; nothing
// mutates it after construction.
type Registry struct {
	order  []string
	byBase map[string]model.PriceListProduct
}

// NewRegistry keeps document order; a repeated base SKU replaces the earlier
// entry in place.
func NewRegistry(products ...model.PriceListProduct) *Registry {
	r := &Registry{byBase: make(map[string]model.PriceListProduct, len(products))}
	for _, p := range products {
		r.put(p)
	}
	return r
}

func (r *Registry) put(p model.PriceListProduct) {
	if _, ok := r.byBase[p.BaseSKU]; !ok {
		r.order = append(r.order, p.BaseSKU)
	}
	r.byBase[p.BaseSKU] = p
}

// LoadRegistry reads a price-list JSON cache. An absent file falls back to
// the given table; a present file replaces it entirely. Malformed content is
// a configuration error.
func LoadRegistry(path string, fallback []model.PriceListProduct, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var data []byte
	err := os.ErrNotExist
	if path != "" {
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Info("price list cache not found, using fallback table",
			zap.String("path", path), zap.Int("products", len(fallback)))
		return NewRegistry(fallback...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read price list %s: %w", path, err)
	}
	r, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info("price list loaded", zap.String("path", path), zap.Int("products", r.Len()))
	return r, nil
}

// ParseRegistry accepts either {"metadata": ..., "products": {...}} or the
// bare {"<base_sku>": {...}} map.
func ParseRegistry(data []byte) (*Registry, error) {
	keys, values, err := orderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPriceList, err)
	}
	if raw, ok := values["products"]; ok {
		keys, values, err = orderedObject(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: products: %v", ErrInvalidPriceList, err)
		}
	} else {
		delete(values, "metadata")
	}

	r := NewRegistry()
	for _, k := range keys {
		raw, ok := values[k]
		if !ok {
			continue
		}
		var p model.PriceListProduct
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: product %s: %v", ErrInvalidPriceList, k, err)
		}
		if p.BaseSKU == "" {
			p.BaseSKU = k
		}
		for _, v := range p.Variants {
			if !ValidPrice(v.PriceEUR) {
				return nil, fmt.Errorf("%w: variant %s price %v out of range", ErrInvalidPriceList, v.SKU, v.PriceEUR)
			}
		}
		r.put(p)
	}
	return r, nil
}

func orderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	values := map[string]json.RawMessage{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := kt.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("value for %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func (r *Registry) Len() int { return len(r.order) }

// All returns products in document order.
func (r *Registry) All() []model.PriceListProduct {
	out := make([]model.PriceListProduct, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.byBase[k])
	}
	return out
}

func (r *Registry) ByBaseSKU(base string) (model.PriceListProduct, bool) {
	p, ok := r.byBase[base]
	return p, ok
}

// BySlug returns products whose url slug equals slug.
func (r *Registry) BySlug(slug string) []model.PriceListProduct {
	var out []model.PriceListProduct
	for _, p := range r.All() {
		if p.URLSlug == slug {
			out = append(out, p)
		}
	}
	return out
}

// Candidates returns products whose slug equals slug or whose name contains
// it case-insensitively, in document order.
func (r *Registry) Candidates(slug string) []model.PriceListProduct {
	if slug == "" {
		return nil
	}
	needle := strings.ToLower(slug)
	var out []model.PriceListProduct
	for _, p := range r.All() {
		if p.URLSlug == slug || strings.Contains(strings.ToLower(p.ProductName), needle) {
			out = append(out, p)
		}
	}
	return out
}

// VariantPrice looks up a full variant SKU such as "14126 1000" or
// "0162/1".
func (r *Registry) VariantPrice(sku string) (float64, bool) {
	base := sku
	if i := strings.IndexAny(sku, " /"); i > 0 {
		base = sku[:i]
	}
	p, ok := r.byBase[base]
	if !ok {
		return 0, false
	}
	for _, v := range p.Variants {
		if v.SKU == sku {
			return v.PriceEUR, true
		}
	}
	return 0, false
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		vb, err := json.Marshal(r.byBase[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Colors lists the German color names of a product, comma separated.
func Colors(p model.PriceListProduct) string {
	names := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.ColorNameDE != "" {
			names = append(names, v.ColorNameDE)
		}
	}
	return strings.Join(names, ", ")
}
