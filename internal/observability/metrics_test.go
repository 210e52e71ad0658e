package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveScrape(300 * time.Millisecond)
	m.ObserveScrape(time.Second)
	m.ObserveProduct("variable")
	m.ObserveProduct("variation")
	m.ObserveProduct("variation")
	m.ObserveWarnings(3)
	m.ObserveWarnings(0)
	m.ObserveSkip("not_found")
	m.ObserveAI("translate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PagesScraped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Products.WithLabelValues("variable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Products.WithLabelValues("variation")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Warnings))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Skipped.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AIRequests.WithLabelValues("translate")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScrapeSeconds, "lightcat_scrape_duration_seconds"))
}

func TestMetricsExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveSkip("parse")

	expected := `
# HELP lightcat_skipped_total Products skipped by reason.
# TYPE lightcat_skipped_total counter
lightcat_skipped_total{reason="parse"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lightcat_skipped_total"))

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lightcat_skipped_total{reason="parse"} 1`)
}

func TestNewWithoutRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		m := New(nil)
		m.ObserveWarnings(1)
	})
}
