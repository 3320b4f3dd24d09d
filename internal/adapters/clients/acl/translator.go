package acl

import (
	"context"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients"
)

// BaseAdapter provides common functionality for ACL adapters.
// Embed this in site-specific adapters.
type BaseAdapter struct {
	client   *clients.Client
	siteName string
}

// NewBaseAdapter creates a new base adapter with the given client and site name.
func NewBaseAdapter(client *clients.Client, siteName string) BaseAdapter {
	return BaseAdapter{
		client:   client,
		siteName: siteName,
	}
}

// SiteName returns the name of the crawled site.
func (a *BaseAdapter) SiteName() string {
	return a.siteName
}

// Get performs a GET request and returns a 2xx response. On failure the
// body is drained and closed and a mapped domain error is returned. The
// caller must close the returned body.
func (a *BaseAdapter) Get(ctx context.Context, target string) (*http.Response, error) {
	url := a.client.BuildURL(target)

	resp, err := a.client.Get(ctx, target)
	if err != nil {
		return nil, MapHTTPError(nil, err, url)
	}

	if !IsSuccess(resp.StatusCode) {
		defer func() { _ = resp.Body.Close() }()
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, MapHTTPError(resp, nil, url)
	}

	return resp, nil
}

// Translator is a function type that translates an external representation
// to a domain type. The function should validate the external data and
// return a domain error if validation fails.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies a translator function to a slice of external items.
// The first failure aborts the batch; no partial result is returned.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, err
		}

		result = append(result, translated)
	}

	return result, nil
}

