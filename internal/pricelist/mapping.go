package pricelist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap"
)

var (
	ErrInvalidMapping   = errors.New("invalid sku mapping")
	ErrInvalidPriceList = errors.New("invalid price list")
)

// MappingEntry overrides the product name and slug of a base SKU.
type MappingEntry struct {
	ProductName string `json:"product_name"`
	URLSlug     string `json:"url_slug"`
}

type SKUMapping map[string]MappingEntry

// LoadSKUMapping reads a curated {"<sku>": {"product_name", "url_slug"}}
// file. A missing file yields an empty mapping. Anything malformed fails the
// whole load.
func LoadSKUMapping(path string, keyPattern *regexp.Regexp, log *zap.Logger) (SKUMapping, error) {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("sku mapping file not found, using empty mapping", zap.String("path", path))
		return SKUMapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sku mapping %s: %w", path, err)
	}
	return ParseSKUMapping(data, keyPattern)
}

func ParseSKUMapping(data []byte, keyPattern *regexp.Regexp) (SKUMapping, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidMapping)
	}
	out := make(SKUMapping, len(raw))
	for sku, fields := range raw {
		if !keyPattern.MatchString(sku) {
			return nil, fmt.Errorf("%w: key %q does not match %s", ErrInvalidMapping, sku, keyPattern)
		}
		name, err := requiredString(fields, "product_name")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMapping, sku, err)
		}
		slug, err := requiredString(fields, "url_slug")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMapping, sku, err)
		}
		out[sku] = MappingEntry{ProductName: name, URLSlug: slug}
	}
	return out, nil
}

func requiredString(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string", key)
	}
	if s == "" {
		return "", fmt.Errorf("%s is empty", key)
	}
	return s, nil
}
