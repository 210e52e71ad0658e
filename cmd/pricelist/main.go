package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"lightcat/internal/config"
	"lightcat/internal/logger"
	"lightcat/internal/model"
	"lightcat/internal/pricelist"
)

// pdftotext -layout lodes_2025.pdf pages.txt
// go run ./cmd/pricelist -manufacturer=lodes -in=pages.txt -out=data/lodes.json
func main() {
	manufacturer := flag.String("manufacturer", "lodes", "Price list layout: lodes or vibia")
	in := flag.String("in", "", "Page text extracted from the price list PDF (pages separated by form feeds)")
	mapping := flag.String("mapping", "", "SKU mapping JSON (defaults to SKU_MAPPING_PATH)")
	out := flag.String("out", "", "Output JSON path (defaults to PRICE_LIST_PATH)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *in == "" {
		log.Fatal("missing -in")
	}
	if *mapping == "" {
		*mapping = cfg.SKUMappingPath
	}
	if *out == "" {
		*out = cfg.PriceListPath
	}
	if *out == "" {
		log.Fatal("missing -out and PRICE_LIST_PATH")
	}

	m := model.Manufacturer(*manufacturer)
	pattern, err := pricelist.PatternFor(m)
	if err != nil {
		log.Fatal("unknown manufacturer", zap.Error(err))
	}
	skuMapping, err := pricelist.LoadSKUMapping(*mapping, pattern.MappingKey, log)
	if err != nil {
		log.Fatal("sku mapping rejected", zap.Error(err))
	}

	text, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal("read page text", zap.Error(err))
	}
	pages := pricelist.SplitPages(string(text))

	ex := pricelist.NewExtractor(m, skuMapping, log)
	reg := ex.Extract(pages)
	log.Info("price list parsed",
		zap.String("manufacturer", *manufacturer),
		zap.Int("pages", len(pages)),
		zap.Int("products", reg.Len()))

	if err := pricelist.WriteJSONAtomic(*out, ex.Document(*in, reg)); err != nil {
		log.Fatal("write price list", zap.Error(err))
	}

	fmt.Print(ex.Stats.Summary())
	log.Info("price list written", zap.String("path", *out))
}
