// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNetwork, ErrParse, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
)

// PageFetcher retrieves raw page bodies.
//
// Key considerations:
//   - Handle timeouts via context deadline
//   - Any non-2xx status is a failure; its body is never returned
type PageFetcher interface {
	// FetchPage returns the body of url.
	// Returns a *domain.NetworkError for transport failures and non-2xx statuses.
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// PageParser turns a page body into records and a next-page link.
type PageParser interface {
	// ParsePage extracts the page's quotes in document order and the raw
	// href of its next-page link.
	// Returns a *domain.ParseError when body is not HTML and a
	// *domain.MissingFieldError when a record lacks text or author.
	ParsePage(ctx context.Context, url string, body []byte) (*domain.Page, error)
}

// QuoteWriter persists a complete, ordered set of quotes.
type QuoteWriter interface {
	// WriteQuotes writes all quotes in one pass. Nothing is written
	// before this is called, so a failed crawl leaves no output.
	WriteQuotes(ctx context.Context, quotes []domain.Quote) error
}
