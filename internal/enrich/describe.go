package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"lightcat/internal/model"
)

const shortDescriptionWords = 20

// Describer writes product copy. On any failure the product's own text is
// kept.
type Describer struct {
	Completer *Completer
	Log       *zap.Logger
}

func NewDescriber(c *Completer, log *zap.Logger) *Describer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Describer{Completer: c, Log: log}
}

func specList(p model.Product) string {
	var sb strings.Builder
	for k, v := range p.Attributes.All() {
		fmt.Fprintf(&sb, "- %s: %s\n", k, v)
	}
	if sb.Len() == 0 {
		return "No specifications available"
	}
	return strings.TrimRight(sb.String(), "\n")
}

func descriptionPrompt(p model.Product) string {
	return fmt.Sprintf(`You are a professional e-commerce copywriter for a luxury lighting retailer.

Product Name: %s
Manufacturer: %s
Categories: %s

Original Description:
%s

Technical Specifications:
%s

Write a unique, compelling product description (2-3 paragraphs) that:
1. Highlights the design aesthetics and unique features
2. Naturally mentions key technical specifications where relevant
3. Uses an elegant, sophisticated tone appropriate for luxury lighting
4. Is SEO-friendly with relevant keywords
5. Does NOT copy or closely paraphrase the original description
6. Focuses on benefits and use cases

Return ONLY the description text, no preamble or extra formatting.`,
		p.Name, p.Manufacturer, strings.Join(p.Categories, ", "), p.Description, specList(p))
}

func shortDescriptionPrompt(p model.Product, words int) string {
	return fmt.Sprintf(`Write a German short description of at most %d words for this lighting product.

Product Name: %s
Description:
%s

Technical Specifications:
%s

Return only the short description.`, words, p.Name, p.Description, specList(p))
}

// Describe returns a generated description, or p.Description on error.
func (d *Describer) Describe(ctx context.Context, p model.Product) string {
	out, err := d.Completer.Complete(ctx, "description", descriptionPrompt(p), 1024)
	if err != nil {
		d.Log.Warn("description generation failed, keeping original", zap.String("sku", p.SKU), zap.Error(err))
		return p.Description
	}
	return out
}

// ShortDescription returns a generated teaser, or the existing one on error.
func (d *Describer) ShortDescription(ctx context.Context, p model.Product) string {
	out, err := d.Completer.Complete(ctx, "short_description", shortDescriptionPrompt(p, shortDescriptionWords), 200)
	if err != nil {
		d.Log.Warn("short description generation failed", zap.String("sku", p.SKU), zap.Error(err))
		return p.ShortDescription
	}
	return out
}
