package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"lightcat/internal/config"
	"lightcat/internal/crawler"
	"lightcat/internal/db"
	"lightcat/internal/enrich"
	"lightcat/internal/logger"
	"lightcat/internal/observability"
	"lightcat/internal/pipeline"
	"lightcat/internal/pricelist"
	"lightcat/internal/reconcile"
	"lightcat/internal/repository"
)

// go run ./cmd/scraper -slugs=kelly,a-tube
// go run ./cmd/scraper -slugs=kelly -describe -translate -classify -persist
func main() {
	slugsArg := flag.String("slugs", "kelly", "Product slugs separated by commas")
	lang := flag.String("lang", "en", "Site language to scrape")
	out := flag.String("out", "", "Output directory (defaults to OUTPUT_DIR)")
	priceList := flag.String("pricelist", "", "Price list JSON (defaults to PRICE_LIST_PATH, Kelly table when absent)")
	translate := flag.Bool("translate", false, "Translate scraped text to German")
	describe := flag.Bool("describe", false, "Generate descriptions and short descriptions")
	classify := flag.Bool("classify", false, "Sort images into studio shots and project photos")
	persist := flag.Bool("persist", false, "Store snapshots and products in Postgres")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *out == "" {
		*out = cfg.OutputDir
	}
	if *priceList == "" {
		*priceList = cfg.PriceListPath
	}

	registry, err := pricelist.LoadRegistry(*priceList, pricelist.KellyFallback(), log)
	if err != nil {
		log.Fatal("price list rejected", zap.Error(err))
	}

	metrics := observability.New(prometheus.DefaultRegisterer)
	srv := observability.Start(cfg.MetricsPort, prometheus.DefaultGatherer, log)
	defer srv.Close()

	p := &pipeline.Pipeline{
		Scraper: &crawler.Scraper{
			Fetcher: crawler.NewFetcher(log),
			BaseURL: cfg.SiteBaseURL,
			Lang:    *lang,
		},
		Engine:    reconcile.New(registry, log),
		Metrics:   metrics,
		Workers:   cfg.WorkerCount,
		OutputDir: *out,
		Log:       log,
	}

	if *translate || *describe || *classify {
		if cfg.OpenAIKey == "" {
			log.Fatal("OPENAI_API_KEY is required for -translate, -describe and -classify")
		}
		var cache enrich.Cache
		if cfg.RedisURL != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
			defer rdb.Close()
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Warn("redis unavailable, using in-memory ai cache", zap.Error(err))
			} else {
				cache = enrich.NewRedisCache(rdb, cfg.AICacheTTL)
			}
		}
		completer := enrich.NewCompleter(openai.NewClient(cfg.OpenAIKey), cfg.OpenAIModel, cache, log)
		if *describe {
			p.Describer = enrich.NewDescriber(completer, log)
		}
		if *translate {
			p.Translator = enrich.NewTranslator(completer, log)
		}
		if *classify {
			p.Classifier = enrich.NewClassifier(completer, log)
		}
	}

	if *persist {
		conn, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres (database/sql)", zap.Error(err))
		}
		defer conn.Close()
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres (pgxpool)", zap.Error(err))
		}
		defer pool.Close()

		snapshots := &repository.SnapshotRepository{DB: conn}
		products := &repository.ProductRepository{DB: pool}
		if err := snapshots.Migrate(ctx); err != nil {
			log.Fatal("migrate snapshots", zap.Error(err))
		}
		if err := products.Migrate(ctx); err != nil {
			log.Fatal("migrate products", zap.Error(err))
		}
		p.Snapshots = snapshots
		p.Products = products
	}

	var slugs []string
	for _, s := range strings.Split(*slugsArg, ",") {
		if s = strings.TrimSpace(s); s != "" {
			slugs = append(slugs, s)
		}
	}

	sum, err := p.Run(ctx, slugs)
	if sum.Stats != nil {
		fmt.Print(sum.Stats.Summary())
	}
	for _, f := range sum.Files {
		fmt.Println(f)
	}
	if err != nil {
		log.Fatal("scraper run failed", zap.Error(err))
	}
}
