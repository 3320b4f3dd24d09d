package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients"
	"github.com/jsamuelsen/quote-scraper/internal/adapters/html"
	"github.com/jsamuelsen/quote-scraper/internal/domain"
	"github.com/jsamuelsen/quote-scraper/internal/platform/logging"
)

// PageClientConfig contains configuration for the page client.
type PageClientConfig struct {
	// Client is the HTTP client to use for requests.
	// Its BaseURL is used for relative targets.
	Client *clients.Client

	// SiteName labels errors and logs.
	SiteName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// PageClient implements ports.PageFetcher.
type PageClient struct {
	BaseAdapter
	logger *slog.Logger
}

// NewPageClient creates a new page client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewPageClient(cfg PageClientConfig) *PageClient {
	if cfg.Client == nil {
		panic("PageClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	siteName := cfg.SiteName
	if siteName == "" {
		siteName = "site"
	}

	return &PageClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, siteName),
		logger:      logger,
	}
}

// FetchPage retrieves the body of url, transcoded to UTF-8 from the charset
// the response declares.
// Implements ports.PageFetcher.
func (c *PageClient) FetchPage(ctx context.Context, url string) ([]byte, error) {
	logger := c.logger.With(slog.String("site", c.SiteName()), slog.String("url", url))
	logger.Log(ctx, logging.LevelTrace, "starting request")

	resp, err := c.Get(ctx, url)
	if err != nil {
		logger.DebugContext(ctx, "page fetch failed", slog.Any("error", err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError(url, fmt.Errorf("reading body: %w", err))
	}

	contentType := resp.Header.Get("Content-Type")
	data, err := html.ToUTF8(raw, contentType)
	if err != nil {
		return nil, domain.NewParseError(url, "decoding charset", err)
	}

	logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("content_type", contentType),
		slog.Int("bytes", len(data)))

	return data, nil
}
