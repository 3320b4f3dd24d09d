package acl

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
)

// errNoResponse is the cause recorded when the client returned neither
// a response nor an error.
var errNoResponse = errors.New("no response received")

// MapHTTPError maps a fetch outcome to a domain error.
//
// Parameters:
//   - resp: The HTTP response (may be nil for transport errors)
//   - clientErr: Any error from the HTTP client (may be nil)
//   - url: The page being fetched, for error context
//
// Returns nil for a 2xx response, otherwise a *domain.NetworkError.
func MapHTTPError(resp *http.Response, clientErr error, url string) error {
	if clientErr != nil {
		return domain.NewNetworkError(url, clientErr)
	}

	if resp == nil {
		return domain.NewNetworkError(url, errNoResponse)
	}

	if IsSuccess(resp.StatusCode) {
		return nil
	}

	return domain.NewStatusError(url, resp.StatusCode)
}

// IsSuccess reports whether status is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
