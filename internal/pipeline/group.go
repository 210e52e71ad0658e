package pipeline

import (
	"fmt"
	"strings"

	"lightcat/internal/model"
	"lightcat/internal/pricelist"
)

const emptyPrefix = "_empty_"

// Group is one product family: a variable parent with its variations, or a
// simple product.
type Group struct {
	Key      string
	Folder   string
	Products []model.Product
}

// BaseSKU is the parent SKU of a variation and the own SKU otherwise. An
// empty SKU falls back to "_empty_<family>" so unrelated products without
// SKUs stay apart.
func BaseSKU(p model.Product, index int) string {
	base := p.SKU
	if p.IsVariation() {
		base = p.ParentSKU
	}
	if base != "" {
		return base
	}
	family, _, _ := strings.Cut(p.Name, ",")
	family = strings.TrimSpace(family)
	if family == "" {
		family = fmt.Sprintf("product-%d", index)
	}
	return emptyPrefix + family
}

// FolderName turns a group key into an output directory name.
func FolderName(key string) string {
	name := strings.TrimPrefix(key, emptyPrefix)
	if s := pricelist.Slugify(name); s != "unknown" {
		return s
	}
	if name = strings.ReplaceAll(strings.TrimSpace(name), " ", "-"); name != "" {
		return name
	}
	return "product"
}

// GroupByBaseSKU groups products by BaseSKU in first-seen order.
func GroupByBaseSKU(products []model.Product) []Group {
	var groups []Group
	index := map[string]int{}
	for i, p := range products {
		key := BaseSKU(p, i)
		j, ok := index[key]
		if !ok {
			j = len(groups)
			index[key] = j
			groups = append(groups, Group{Key: key, Folder: FolderName(key)})
		}
		groups[j].Products = append(groups[j].Products, p)
	}
	return groups
}
