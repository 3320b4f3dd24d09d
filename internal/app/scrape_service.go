// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
	"github.com/jsamuelsen/quote-scraper/internal/platform/logging"
	"github.com/jsamuelsen/quote-scraper/internal/platform/metrics"
	"github.com/jsamuelsen/quote-scraper/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-scraper/internal/ports"
)

// ScrapeService walks a pagination chain and accumulates its quotes.
// It depends on port interfaces, not concrete adapters.
type ScrapeService struct {
	fetcher  ports.PageFetcher
	parser   ports.PageParser
	links    *LinkResolver
	maxPages int
	run      *metrics.Run
	crawl    *telemetry.CrawlMetrics
	logger   *slog.Logger
}

// ScrapeServiceConfig contains configuration for the scrape service.
type ScrapeServiceConfig struct {
	Fetcher ports.PageFetcher
	Parser  ports.PageParser
	Links   *LinkResolver

	// MaxPages stops the crawl after this many pages. Zero means no limit.
	MaxPages int

	// Metrics receives per-run counters. Optional.
	Metrics *metrics.Run

	Logger *slog.Logger
}

// NewScrapeService creates a new scrape service.
// Panics if Fetcher, Parser or Links is nil.
func NewScrapeService(cfg ScrapeServiceConfig) *ScrapeService {
	if cfg.Fetcher == nil {
		panic("app: ScrapeServiceConfig.Fetcher is required")
	}

	if cfg.Parser == nil {
		panic("app: ScrapeServiceConfig.Parser is required")
	}

	if cfg.Links == nil {
		panic("app: ScrapeServiceConfig.Links is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	crawl, err := telemetry.NewCrawlMetrics()
	if err != nil {
		logger.Warn("crawl instruments unavailable", slog.Any("error", err))
	}

	return &ScrapeService{
		fetcher:  cfg.Fetcher,
		parser:   cfg.Parser,
		links:    cfg.Links,
		maxPages: cfg.MaxPages,
		run:      cfg.Metrics,
		crawl:    crawl,
		logger:   logger,
	}
}

// Scrape fetches startURL and every page reachable through next links,
// returning their quotes in traversal order. Any page failure aborts the
// crawl and nothing accumulated so far is returned.
func (s *ScrapeService) Scrape(ctx context.Context, startURL string) (*domain.ScrapeResult, error) {
	result := &domain.ScrapeResult{Quotes: []domain.Quote{}}
	current := startURL

	s.logger.InfoContext(ctx, "starting crawl",
		slog.String("start_url", startURL),
		slog.String("link_mode", string(s.links.Mode())),
		slog.Int("max_pages", s.maxPages),
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("crawl interrupted before %s: %w", current, err)
		}

		page, err := s.scrapePage(ctx, result.Pages+1, current)
		if err != nil {
			return nil, err
		}

		result.Quotes = append(result.Quotes, page.Quotes...)
		result.Pages++

		if !page.HasNext() {
			break
		}

		if s.maxPages > 0 && result.Pages >= s.maxPages {
			result.Truncated = true
			s.logger.WarnContext(ctx, "page limit reached, stopping crawl",
				slog.Int("max_pages", s.maxPages),
				slog.String("next_href", page.NextHref),
			)

			break
		}

		next, err := s.links.Next(current, page.NextHref)
		if err != nil {
			return nil, err
		}

		current = next
	}

	s.logger.InfoContext(ctx, "crawl finished",
		slog.Int("pages", result.Pages),
		slog.Int("quotes", len(result.Quotes)),
		slog.Bool("truncated", result.Truncated),
	)

	return result, nil
}

// scrapePage fetches and extracts one page.
func (s *ScrapeService) scrapePage(ctx context.Context, pageNum int, url string) (*domain.Page, error) {
	ctx = logging.WithPage(ctx, pageNum, url)
	logger := logging.FromContext(ctx)

	ctx, span := telemetry.Tracer().Start(ctx, "crawl.page",
		trace.WithAttributes(
			attribute.Int("crawl.page.number", pageNum),
			attribute.String("url.full", url),
		),
	)
	defer span.End()

	start := time.Now()

	page, err := s.fetchAndParse(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.crawl.RecordPage(ctx, time.Since(start), 0, "error")
		logger.ErrorContext(ctx, "page failed", slog.Any("error", err))

		return nil, err
	}

	span.SetAttributes(attribute.Int("crawl.page.quotes", len(page.Quotes)))
	s.crawl.RecordPage(ctx, time.Since(start), len(page.Quotes), "success")

	if s.run != nil {
		s.run.PageFetched(len(page.Quotes))
	}

	logger.DebugContext(ctx, "page scraped",
		slog.Int("quotes", len(page.Quotes)),
		slog.Bool("has_next", page.HasNext()),
	)

	return page, nil
}

func (s *ScrapeService) fetchAndParse(ctx context.Context, url string) (*domain.Page, error) {
	body, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	return s.parser.ParsePage(ctx, url, body)
}
