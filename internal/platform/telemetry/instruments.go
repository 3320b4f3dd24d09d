package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quote-scraper/crawl"

// Tracer returns the tracer used for crawl spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// CrawlMetrics holds the per-page crawl instruments.
type CrawlMetrics struct {
	pageDuration metric.Float64Histogram
	pagesTotal   metric.Int64Counter
	quotesTotal  metric.Int64Counter
}

// NewCrawlMetrics creates crawl instruments on the global meter provider.
func NewCrawlMetrics() (*CrawlMetrics, error) {
	meter := otel.Meter(instrumentationName)

	pageDuration, err := meter.Float64Histogram(
		"crawl.page.duration",
		metric.WithDescription("Time to fetch and extract one page in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	pagesTotal, err := meter.Int64Counter(
		"crawl.pages.total",
		metric.WithDescription("Total number of pages processed"),
	)
	if err != nil {
		return nil, err
	}

	quotesTotal, err := meter.Int64Counter(
		"crawl.quotes.total",
		metric.WithDescription("Total number of quotes extracted"),
	)
	if err != nil {
		return nil, err
	}

	return &CrawlMetrics{
		pageDuration: pageDuration,
		pagesTotal:   pagesTotal,
		quotesTotal:  quotesTotal,
	}, nil
}

// RecordPage records one processed page. A nil receiver is a no-op so
// callers can keep going when instrument creation failed.
func (m *CrawlMetrics) RecordPage(ctx context.Context, duration time.Duration, quotes int, outcome string) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("crawl.outcome", outcome))
	m.pageDuration.Record(ctx, duration.Seconds(), attrs)
	m.pagesTotal.Add(ctx, 1, attrs)
	m.quotesTotal.Add(ctx, int64(quotes), attrs)
}
