// Package main is the entry point for the quote scraper.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients"
	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-scraper/internal/adapters/export"
	"github.com/jsamuelsen/quote-scraper/internal/app"
	"github.com/jsamuelsen/quote-scraper/internal/platform/config"
	"github.com/jsamuelsen/quote-scraper/internal/platform/logging"
	"github.com/jsamuelsen/quote-scraper/internal/platform/metrics"
	"github.com/jsamuelsen/quote-scraper/internal/platform/telemetry"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command-line flags.
type options struct {
	profile     string
	baseURL     string
	linkMode    string
	maxPages    int
	metricsFile string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "quotescraper [output.csv]",
		Short:         "Crawl a paginated quote site and write every quote to a CSV file",
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := opts.overrides(cmd, args)

			summary, err := run(cmd.Context(), opts.profile, overrides, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d quotes from %d pages to %s\n",
				summary.Quotes, summary.Pages, summary.Output)

			return nil
		},
	}

	profile := os.Getenv(config.ProfileEnvVar)
	if profile == "" {
		profile = "local"
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.profile, "profile", profile, "configuration profile (configs/<profile>.yaml)")
	flags.StringVar(&opts.baseURL, "base-url", "", "site to crawl (overrides site.base_url)")
	flags.StringVar(&opts.linkMode, "link-mode", "", "next link handling: concat|resolve")
	flags.IntVar(&opts.maxPages, "max-pages", 0, "stop after this many pages (0 = no limit)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write a Prometheus textfile with run metrics")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace|debug|info|warn|error")

	return cmd
}

// overrides returns the config keys set explicitly on the command line.
func (o *options) overrides(cmd *cobra.Command, args []string) map[string]any {
	out := make(map[string]any)

	if len(args) == 1 {
		out["output.path"] = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		out["site.base_url"] = o.baseURL
	}

	if flags.Changed("link-mode") {
		out["pagination.link_mode"] = o.linkMode
	}

	if flags.Changed("max-pages") {
		out["pagination.max_pages"] = o.maxPages
	}

	if flags.Changed("metrics-file") {
		out["output.metrics_file"] = o.metricsFile
	}

	if flags.Changed("log-level") {
		out["log.level"] = o.logLevel
	}

	return out
}

func run(ctx context.Context, profile string, overrides map[string]any, logOut io.Writer) (*app.ExportSummary, error) {
	start := time.Now()

	// 1. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile, overrides)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 2. Initialize logging with a per-run ID
	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, logOut)
	logging.SetDefault(logger)

	ctx = logging.WithContext(ctx, logger)
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger = logging.FromContext(ctx)

	logger.InfoContext(ctx, "starting quote scraper",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("start_url", cfg.Site.StartURL()),
		slog.String("output", cfg.Output.Path),
	)

	// 3. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.ErrorContext(ctx, "telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Run metrics, written on success and failure
	runMetrics := metrics.NewRun()

	summary, err := runExport(ctx, cfg, runMetrics, logger)

	runMetrics.Finish(time.Since(start), err == nil)

	if cfg.Output.MetricsFile != "" {
		if writeErr := runMetrics.WriteTextfile(cfg.Output.MetricsFile); writeErr != nil {
			logger.WarnContext(ctx, "could not write metrics file",
				slog.String("path", cfg.Output.MetricsFile),
				slog.Any("error", writeErr),
			)
		}
	}

	if err != nil {
		logger.ErrorContext(ctx, "export failed", slog.Any("error", err))
		return nil, err
	}

	logger.InfoContext(ctx, "export complete",
		slog.Int("pages", summary.Pages),
		slog.Int("quotes", summary.Quotes),
		slog.Bool("truncated", summary.Truncated),
		slog.Duration("duration", summary.Duration),
	)

	return summary, nil
}

// runExport wires the adapters and runs one export.
func runExport(ctx context.Context, cfg *config.Config, runMetrics *metrics.Run, logger *slog.Logger) (*app.ExportSummary, error) {
	// HTTP client for the crawled site
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Site.BaseURL,
		ServiceName: cfg.App.Name,
		Timeout:     cfg.Client.Timeout,
		UserAgent:   cfg.Client.UserAgent,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	// Adapters (ACL pattern)
	fetcher := acl.NewPageClient(acl.PageClientConfig{
		Client:   httpClient,
		SiteName: cfg.Site.BaseURL,
		Logger:   logger,
	})

	parser, err := acl.NewQuotePageParser(acl.Selectors{
		Record: cfg.Site.Selectors.Record,
		Text:   cfg.Site.Selectors.Text,
		Author: cfg.Site.Selectors.Author,
		Tag:    cfg.Site.Selectors.Tag,
		Next:   cfg.Site.Selectors.Next,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("compiling selectors: %w", err)
	}

	links, err := app.NewLinkResolver(app.LinkMode(cfg.Pagination.LinkMode), cfg.Site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating link resolver: %w", err)
	}

	// Application services
	scraper := app.NewScrapeService(app.ScrapeServiceConfig{
		Fetcher:  fetcher,
		Parser:   parser,
		Links:    links,
		MaxPages: cfg.Pagination.MaxPages,
		Metrics:  runMetrics,
		Logger:   logger,
	})

	exporter := app.NewExportService(app.ExportServiceConfig{
		Scraper:  scraper,
		Writer:   export.NewCSVWriter(cfg.Output.Path, logger),
		Executor: app.NewExecutor(logger),
		Logger:   logger,
	})

	return exporter.Export(ctx, app.ExportRequest{
		StartURL: cfg.Site.StartURL(),
		Output:   cfg.Output.Path,
	})
}
