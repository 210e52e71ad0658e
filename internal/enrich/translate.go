package enrich

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"lightcat/internal/model"
)

type Field string

const (
	FieldName             Field = "product_name"
	FieldDescription      Field = "description"
	FieldShortDescription Field = "short_description"
	FieldCategory         Field = "category"
	FieldAttribute        Field = "attribute"
)

const translationInstructions = `You are a professional translator specializing in lighting products for German e-commerce.
Translate the following text to natural, professional German.

Important guidelines:
- Use proper lighting industry terminology (Pendelleuchte, not "hängende Lampe")
- Maintain technical specifications exactly as written (IP ratings, watts, lumens, Kelvin)
- Keep brand names unchanged
- Use formal tone appropriate for product descriptions
- Do not add explanations or notes, return only the translation`

func translationPrompt(text string, field Field, hint string) string {
	var task, ret string
	switch field {
	case FieldName:
		task, ret = "Translate this lighting product name to German:", "Return only the German product name."
	case FieldCategory:
		task, ret = "Translate this product category to German:", `Return only the German category name (e.g., "Suspension" -> "Pendelleuchten").`
	case FieldAttribute:
		task, ret = fmt.Sprintf("Translate this product attribute value to German (context: %s):", hint), "Return only the translated value."
	case FieldShortDescription:
		task, ret = "Translate this short product description to German:", "Return only the German short description."
	default:
		task, ret = "Translate this lighting product description to German:", "Return only the German description."
	}
	return translationInstructions + "\n\n" + task + "\n\n" + text + "\n\n" + ret
}

const minDetectLength = 20

var germanStopwords = map[string]bool{
	"der": true, "die": true, "das": true, "und": true, "mit": true, "für": true,
	"ist": true, "ein": true, "eine": true, "einer": true, "von": true, "den": true,
	"dem": true, "des": true, "nicht": true, "auf": true, "aus": true, "zu": true,
	"im": true, "sich": true, "wird": true, "werden": true, "durch": true, "oder": true,
}

// IsGerman reports whether text reads as German. Short texts are never
// considered German so they always get translated.
func IsGerman(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < minDetectLength {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return false
	}
	hits := 0
	for _, w := range words {
		if germanStopwords[w] {
			hits++
		}
	}
	return hits >= 2 && hits*5 >= len(words)
}

// Translator renders product text in German. Failed translations keep the
// source text.
type Translator struct {
	Completer *Completer
	Log       *zap.Logger
}

func NewTranslator(c *Completer, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{Completer: c, Log: log}
}

func (t *Translator) Translate(ctx context.Context, text string, field Field, hint string) string {
	if strings.TrimSpace(text) == "" || IsGerman(text) {
		return text
	}
	out, err := t.Completer.Complete(ctx, "translate:"+string(field), translationPrompt(text, field, hint), 2000)
	if err != nil {
		t.Log.Warn("translation failed, keeping original", zap.String("field", string(field)), zap.Error(err))
		return text
	}
	return out
}

// TranslateProduct returns a translated copy of p. Name, description,
// categories and attribute values are translated; attribute keys,
// identifiers and variation attributes are kept.
func (t *Translator) TranslateProduct(ctx context.Context, p model.Product) model.Product {
	out := p.Clone()
	if out.OriginalName == "" {
		out.OriginalName = p.Name
	}
	out.Name = t.Translate(ctx, p.Name, FieldName, "lighting product name")
	out.Description = t.Translate(ctx, p.Description, FieldDescription, "lighting product")
	out.ShortDescription = t.Translate(ctx, p.ShortDescription, FieldShortDescription, "lighting product")
	for i, c := range p.Categories {
		out.Categories[i] = t.Translate(ctx, c, FieldCategory, "product category")
	}
	for k, v := range p.Attributes.All() {
		out.Attributes.Set(k, t.Translate(ctx, v, FieldAttribute, "product attribute "+k))
	}
	out.ScrapedLanguage = "de"
	out.TranslatedToGerman = true
	return out
}
