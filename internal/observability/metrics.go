package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics counts pipeline outcomes. Every counter lives on the registry
// passed to New.
type Metrics struct {
	PagesScraped  prometheus.Counter
	Products      *prometheus.CounterVec
	Warnings      prometheus.Counter
	Skipped       *prometheus.CounterVec
	AIRequests    *prometheus.CounterVec
	ScrapeSeconds prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PagesScraped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lightcat_pages_scraped_total",
			Help: "Product pages fetched and parsed.",
		}),
		Products: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightcat_products_total",
			Help: "Reconciled products by product type.",
		}, []string{"type"}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lightcat_warnings_total",
			Help: "Data quality warnings raised during reconciliation.",
		}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightcat_skipped_total",
			Help: "Products skipped by reason.",
		}, []string{"reason"}),
		AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightcat_ai_requests_total",
			Help: "AI enrichment calls by kind.",
		}, []string{"kind"}),
		ScrapeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lightcat_scrape_duration_seconds",
			Help:    "Time to scrape one product page.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.PagesScraped, m.Products, m.Warnings, m.Skipped, m.AIRequests, m.ScrapeSeconds)
	}
	return m
}

func (m *Metrics) ObserveScrape(d time.Duration) {
	m.PagesScraped.Inc()
	m.ScrapeSeconds.Observe(d.Seconds())
}

func (m *Metrics) ObserveProduct(productType string) {
	m.Products.WithLabelValues(productType).Inc()
}

func (m *Metrics) ObserveWarnings(n int) {
	m.Warnings.Add(float64(n))
}

func (m *Metrics) ObserveSkip(reason string) {
	m.Skipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveAI(kind string) {
	m.AIRequests.WithLabelValues(kind).Inc()
}

// Start serves /metrics for g on port in the background.
func Start(port string, g prometheus.Gatherer, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
