package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
	"github.com/jsamuelsen/quote-scraper/internal/ports"
)

var errNoPages = errors.New("no pages were scraped")

// ExportRequest describes one export run.
type ExportRequest struct {
	// StartURL is the first page of the pagination chain.
	StartURL string

	// Output is the destination reported in the summary.
	Output string
}

// ExportSummary describes a completed export run.
type ExportSummary struct {
	Pages     int
	Quotes    int
	Output    string
	Truncated bool
	Duration  time.Duration
}

// ExportService crawls a site and writes every quote once the crawl
// has completed.
type ExportService struct {
	scraper  *ScrapeService
	writer   ports.QuoteWriter
	executor *Executor
	logger   *slog.Logger
}

// ExportServiceConfig contains configuration for the export service.
type ExportServiceConfig struct {
	Scraper  *ScrapeService
	Writer   ports.QuoteWriter
	Executor *Executor
	Logger   *slog.Logger
}

// NewExportService creates a new export service.
// Panics if Scraper or Writer is nil.
func NewExportService(cfg ExportServiceConfig) *ExportService {
	if cfg.Scraper == nil {
		panic("app: ExportServiceConfig.Scraper is required")
	}

	if cfg.Writer == nil {
		panic("app: ExportServiceConfig.Writer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	executor := cfg.Executor
	if executor == nil {
		executor = NewExecutor(logger)
	}

	return &ExportService{
		scraper:  cfg.Scraper,
		writer:   cfg.Writer,
		executor: executor,
		logger:   logger,
	}
}

// Export runs the crawl and writes the result. The writer is only invoked
// after every page was fetched and extracted.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportSummary, error) {
	start := time.Now()

	op := Operation[ExportRequest, *domain.ScrapeResult, *domain.ScrapeResult, *ExportSummary]{
		Name:     "export_quotes",
		Validate: s.validate,
		Perform: func(ctx context.Context, req ExportRequest) (*domain.ScrapeResult, error) {
			return s.scraper.Scrape(ctx, req.StartURL)
		},
		Verify: s.verify,
		Archive: func(ctx context.Context, _ ExportRequest, result *domain.ScrapeResult) error {
			return s.writer.WriteQuotes(ctx, result.Quotes)
		},
		Respond: func(_ context.Context, req ExportRequest, result *domain.ScrapeResult) (*ExportSummary, error) {
			return &ExportSummary{
				Pages:     result.Pages,
				Quotes:    len(result.Quotes),
				Output:    req.Output,
				Truncated: result.Truncated,
				Duration:  time.Since(start),
			}, nil
		},
	}

	return Execute(ctx, s.executor, op, req)
}

func (s *ExportService) validate(_ context.Context, req ExportRequest) error {
	if err := ValidateStartURL(req.StartURL); err != nil {
		return err
	}

	if req.Output == "" {
		return domain.NewValidationError("output", "is required")
	}

	return nil
}

func (s *ExportService) verify(ctx context.Context, _ ExportRequest, result *domain.ScrapeResult) (*domain.ScrapeResult, error) {
	if result == nil || result.Pages < 1 {
		return nil, errNoPages
	}

	if result.Quotes == nil {
		result.Quotes = []domain.Quote{}
	}

	for i, q := range result.Quotes {
		if q.Text == "" || q.Author == "" {
			s.logger.WarnContext(ctx, "quote has an empty field",
				slog.Int("index", i),
				slog.Bool("empty_text", q.Text == ""),
				slog.Bool("empty_author", q.Author == ""),
			)
		}
	}

	return result, nil
}
