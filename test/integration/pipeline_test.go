//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients"
	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-scraper/internal/adapters/export"
	"github.com/jsamuelsen/quote-scraper/internal/app"
	"github.com/jsamuelsen/quote-scraper/internal/platform/metrics"
)

// pipelineConfig selects how an end-to-end export is wired.
type pipelineConfig struct {
	BaseURL   string
	StartURL  string
	Output    string
	LinkMode  app.LinkMode
	MaxPages  int
	Selectors acl.Selectors
	Metrics   *metrics.Run
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runPipeline wires real adapters and runs one export.
func runPipeline(ctx context.Context, cfg pipelineConfig) (*app.ExportSummary, error) {
	logger := discardLogger()

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.BaseURL,
		ServiceName: "fixture-site",
		Timeout:     5 * time.Second,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	selectors := cfg.Selectors
	if selectors == (acl.Selectors{}) {
		selectors = acl.DefaultSelectors()
	}

	parser, err := acl.NewQuotePageParser(selectors, logger)
	if err != nil {
		return nil, err
	}

	links, err := app.NewLinkResolver(cfg.LinkMode, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	startURL := cfg.StartURL
	if startURL == "" {
		startURL = cfg.BaseURL
	}

	scraper := app.NewScrapeService(app.ScrapeServiceConfig{
		Fetcher:  acl.NewPageClient(acl.PageClientConfig{Client: client, Logger: logger}),
		Parser:   parser,
		Links:    links,
		MaxPages: cfg.MaxPages,
		Metrics:  cfg.Metrics,
		Logger:   logger,
	})

	exporter := app.NewExportService(app.ExportServiceConfig{
		Scraper: scraper,
		Writer:  export.NewCSVWriter(cfg.Output, logger),
		Logger:  logger,
	})

	return exporter.Export(ctx, app.ExportRequest{StartURL: startURL, Output: cfg.Output})
}
