package reconcile

import (
	"slices"
	"strconv"
	"strings"

	"lightcat/internal/model"
)

const maxNameAttributes = 2

// VariationAttributeNames lists the attribute names used across variants in
// first-seen order. The code column is not a variation attribute.
func VariationAttributeNames(variants []*model.Attributes) []string {
	var names []string
	for _, v := range variants {
		for _, k := range v.Keys() {
			if k != codeHeader && !slices.Contains(names, k) {
				names = append(names, k)
			}
		}
	}
	return names
}

// ParentVariationAttributes joins the distinct values of each name across
// variants with ", ". Names without any value are left out.
func ParentVariationAttributes(variants []*model.Attributes, names []string) *model.Attributes {
	out := &model.Attributes{}
	for _, name := range names {
		var values []string
		for _, v := range variants {
			val, ok := v.Get(name)
			if ok && val != "" && !slices.Contains(values, val) {
				values = append(values, val)
			}
		}
		if len(values) > 0 {
			out.Set(name, strings.Join(values, ", "))
		}
	}
	return out
}

// VariationName appends the variant code to the parent name, or up to two
// attribute values, or "Variant <n>" (1-based).
func VariationName(parent string, variant *model.Attributes, names []string, index int) string {
	if code := variant.Value(codeHeader); code != "" {
		return parent + " " + code
	}
	var parts []string
	for _, name := range names {
		if v := variant.Value(name); v != "" {
			parts = append(parts, v)
			if len(parts) == maxNameAttributes {
				break
			}
		}
	}
	if len(parts) > 0 {
		return parent + " " + strings.Join(parts, " ")
	}
	return parent + " Variant " + strconv.Itoa(index+1)
}

// BuildVariableProducts turns a template product and its variant attribute
// sets into one variable parent followed by one variation per variant. The
// parent keeps the template SKU; a variant without a code gets
// "<parent>-<n>". No variants yields nil.
func BuildVariableProducts(template model.Product, variants []*model.Attributes) []model.Product {
	if len(variants) == 0 {
		return nil
	}
	names := VariationAttributeNames(variants)

	parent := model.NewVariable(template.Clone(), ParentVariationAttributes(variants, names))
	out := make([]model.Product, 0, len(variants)+1)
	out = append(out, parent)

	for i, v := range variants {
		child := template.Clone()
		child.SKU = v.Value(codeHeader)
		if child.SKU == "" {
			child.SKU = parent.SKU + "-" + strconv.Itoa(i+1)
		}
		child.Name = VariationName(parent.Name, v, names, i)
		child.RegularPrice = nil

		own := &model.Attributes{}
		for _, name := range names {
			if val, ok := v.Get(name); ok {
				own.Set(name, val)
			}
		}
		out = append(out, model.NewVariation(child, parent.SKU, own))
	}
	return out
}
