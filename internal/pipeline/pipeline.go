package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lightcat/internal/crawler"
	"lightcat/internal/enrich"
	"lightcat/internal/export"
	"lightcat/internal/model"
	"lightcat/internal/observability"
	"lightcat/internal/pricelist"
	"lightcat/internal/reconcile"
)

type Scraper interface {
	Scrape(ctx context.Context, slug string) (model.SiteScrape, error)
}

type ProductStore interface {
	SaveAll(ctx context.Context, runID uuid.UUID, products []model.Product) error
}

type SnapshotStore interface {
	Save(ctx context.Context, s model.SiteScrape) error
	MarkAsProcessed(ctx context.Context, slug, language string) error
}

const defaultWorkers = 4

// Pipeline scrapes, reconciles, optionally enriches and exports a list of
// product slugs. Optional collaborators may be nil.
type Pipeline struct {
	Scraper    Scraper
	Engine     *reconcile.Engine
	Describer  *enrich.Describer
	Translator *enrich.Translator
	Classifier *enrich.Classifier
	Products   ProductStore
	Snapshots  SnapshotStore
	Metrics    *observability.Metrics
	Workers    int
	OutputDir  string
	Log        *zap.Logger
}

// Summary reports one run.
type Summary struct {
	RunID    uuid.UUID
	Stats    *pricelist.Stats
	Products []model.Product
	Files    []string
}

type outcome struct {
	slug     string
	products []model.Product
	warnings []string
	err      error
}

// Skip reasons used as metric labels.
const (
	ReasonNotFound  = "not_found"
	ReasonNoProduct = "no_product"
	ReasonNoMatch   = "no_products"
	ReasonCanceled  = "canceled"
	ReasonFailed    = "failed"
)

func classify(err error) string {
	switch {
	case errors.Is(err, crawler.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, crawler.ErrNoProduct):
		return ReasonNoProduct
	case errors.Is(err, errNoProducts):
		return ReasonNoMatch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	}
	return ReasonFailed
}

var errNoProducts = errors.New("reconciliation produced no products")

func (p *Pipeline) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

// Run processes slugs on a bounded worker pool. Per-slug failures are
// recorded as skipped; the returned error is only set when nothing could be
// processed or an export failed.
func (p *Pipeline) Run(ctx context.Context, slugs []string) (Summary, error) {
	log := p.logger()
	sum := Summary{RunID: uuid.New(), Stats: pricelist.NewStats(log)}

	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]outcome, len(slugs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for range min(workers, max(len(slugs), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.process(ctx, slugs[i])
			}
		}()
	}
	for i := range slugs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, r := range results {
		for _, w := range r.warnings {
			sum.Stats.AddWarning(w, zap.String("slug", r.slug))
		}
		if p.Metrics != nil {
			p.Metrics.ObserveWarnings(len(r.warnings))
		}
		if r.err != nil {
			reason := classify(r.err)
			if reason == ReasonFailed {
				sum.Stats.AddError("product failed", zap.String("slug", r.slug), zap.Error(r.err))
			}
			sum.Stats.Skip(r.slug, r.err.Error())
			if p.Metrics != nil {
				p.Metrics.ObserveSkip(reason)
			}
			continue
		}
		sum.Products = append(sum.Products, r.products...)
	}

	if len(sum.Products) == 0 {
		return sum, fmt.Errorf("no products from %d slugs", len(slugs))
	}

	for _, g := range GroupByBaseSKU(sum.Products) {
		sum.Stats.AddProduct(g.Key, variations(g.Products))
		files, err := p.export(g)
		sum.Files = append(sum.Files, files...)
		if err != nil {
			return sum, err
		}
	}

	if p.Products != nil {
		if err := p.Products.SaveAll(ctx, sum.RunID, sum.Products); err != nil {
			return sum, fmt.Errorf("persist run %s: %w", sum.RunID, err)
		}
	}

	log.Info("pipeline finished",
		zap.String("run_id", sum.RunID.String()),
		zap.Int("products", sum.Stats.ProductsParsed),
		zap.Int("variants", sum.Stats.VariantsParsed),
		zap.Int("warnings", sum.Stats.Warnings),
		zap.Int("skipped", len(sum.Stats.Skipped)),
	)
	return sum, nil
}

func variations(products []model.Product) int {
	n := 0
	for _, p := range products {
		if p.IsVariation() {
			n++
		}
	}
	return n
}

func (p *Pipeline) process(ctx context.Context, slug string) outcome {
	out := outcome{slug: slug}
	log := p.logger().With(zap.String("slug", slug))

	start := time.Now()
	scrape, err := p.Scraper.Scrape(ctx, slug)
	if err != nil {
		out.err = err
		return out
	}
	if p.Metrics != nil {
		p.Metrics.ObserveScrape(time.Since(start))
	}

	if p.Snapshots != nil {
		if err := p.Snapshots.Save(ctx, scrape); err != nil {
			log.Warn("snapshot not saved", zap.Error(err))
		}
	}

	res := p.Engine.Reconcile(scrape)
	out.warnings = res.Warnings
	if len(res.Products) == 0 {
		out.err = errNoProducts
		return out
	}

	out.products = p.enrich(ctx, res.Products)
	for _, prod := range out.products {
		if p.Metrics != nil {
			p.Metrics.ObserveProduct(string(prod.Type))
		}
	}

	if p.Snapshots != nil {
		if err := p.Snapshots.MarkAsProcessed(ctx, scrape.Slug, scrape.Language); err != nil {
			log.Warn("snapshot not marked", zap.Error(err))
		}
	}
	log.Info("product reconciled", zap.Int("records", len(out.products)), zap.Int("warnings", len(res.Warnings)))
	return out
}

// enrich classifies images, then runs description, translation and short
// description in that order. Variations take images and description of
// their parent.
func (p *Pipeline) enrich(ctx context.Context, products []model.Product) []model.Product {
	if p.Describer == nil && p.Translator == nil && p.Classifier == nil {
		return products
	}
	out := make([]model.Product, len(products))
	parents := map[string]model.Product{}

	for i, prod := range products {
		prod = prod.Clone()
		parent, hasParent := parents[prod.ParentSKU]
		inherit := prod.IsVariation() && hasParent

		if p.Classifier != nil {
			if inherit {
				prod.Images = slices.Clone(parent.Images)
				prod.ProjectImages = slices.Clone(parent.ProjectImages)
			} else if len(prod.Images) > 0 {
				p.observeAIn("image_type", len(prod.Images))
				prod.Images, prod.ProjectImages = p.Classifier.Split(ctx, prod.Images)
			}
		}
		if p.Describer != nil {
			if inherit {
				prod.Description = parent.Description
			} else if !prod.IsVariation() {
				p.observeAI("description")
				prod.Description = p.Describer.Describe(ctx, prod)
			}
		}
		if !prod.IsVariation() {
			parents[prod.SKU] = prod
		}
		if p.Translator != nil {
			p.observeAI("translate")
			prod = p.Translator.TranslateProduct(ctx, prod)
		}
		if p.Describer != nil && !prod.IsVariation() {
			p.observeAI("short_description")
			prod.ShortDescription = p.Describer.ShortDescription(ctx, prod)
		}
		out[i] = prod
	}
	return out
}

func (p *Pipeline) observeAIn(kind string, n int) {
	for range n {
		p.observeAI(kind)
	}
}

func (p *Pipeline) observeAI(kind string) {
	if p.Metrics != nil {
		p.Metrics.ObserveAI(kind)
	}
}

func (p *Pipeline) export(g Group) ([]string, error) {
	if p.OutputDir == "" {
		return nil, nil
	}
	dir := filepath.Join(p.OutputDir, g.Folder)
	csvPath := filepath.Join(dir, "products.csv")
	if err := export.WriteWooCommerceCSVFile(csvPath, g.Products); err != nil {
		return nil, fmt.Errorf("export %s: %w", g.Key, err)
	}
	xlsxPath := filepath.Join(dir, "products.xlsx")
	if err := export.WriteExcel(xlsxPath, g.Products); err != nil {
		return []string{csvPath}, fmt.Errorf("export %s: %w", g.Key, err)
	}
	p.logger().Info("family exported", zap.String("family", g.Key), zap.String("dir", dir), zap.Int("records", len(g.Products)))
	return []string{csvPath, xlsxPath}, nil
}
