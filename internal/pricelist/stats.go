package pricelist

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const summarySkippedLimit = 10

type Skipped struct {
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// Stats aggregates data-quality signals for one parsing run.
type Stats struct {
	ProductsParsed int       `json:"products_parsed"`
	VariantsParsed int       `json:"variants_parsed"`
	Errors         int       `json:"errors"`
	Warnings       int       `json:"warnings"`
	Skipped        []Skipped `json:"skipped_products"`

	log *zap.Logger
}

func NewStats(log *zap.Logger) *Stats {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stats{log: log}
}

func (s *Stats) AddProduct(baseSKU string, variants int) {
	s.ProductsParsed++
	s.VariantsParsed += variants
	s.log.Debug("product parsed", zap.String("base_sku", baseSKU), zap.Int("variants", variants))
}

func (s *Stats) AddWarning(msg string, fields ...zap.Field) {
	s.Warnings++
	s.log.Warn(msg, fields...)
}

func (s *Stats) AddError(msg string, fields ...zap.Field) {
	s.Errors++
	s.log.Error(msg, fields...)
}

func (s *Stats) Skip(sku, reason string) {
	s.Skipped = append(s.Skipped, Skipped{SKU: sku, Reason: reason})
	s.log.Warn("skipped product", zap.String("sku", sku), zap.String("reason", reason))
}

func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Products parsed: %d\n", s.ProductsParsed)
	fmt.Fprintf(&b, "Variants parsed: %d\n", s.VariantsParsed)
	fmt.Fprintf(&b, "Errors: %d\n", s.Errors)
	fmt.Fprintf(&b, "Warnings: %d\n", s.Warnings)
	if len(s.Skipped) > 0 {
		fmt.Fprintf(&b, "Skipped products (%d):\n", len(s.Skipped))
		for i, sk := range s.Skipped {
			if i == summarySkippedLimit {
				fmt.Fprintf(&b, "  ... and %d more\n", len(s.Skipped)-summarySkippedLimit)
				break
			}
			fmt.Fprintf(&b, "  - %s: %s\n", sk.SKU, sk.Reason)
		}
	}
	return b.String()
}
