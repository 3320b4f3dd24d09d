package app

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/purell"
	whatwgUrl "github.com/nlnwa/whatwg-url/url"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
)

// LinkMode selects how a next-page href becomes the next URL.
type LinkMode string

const (
	// LinkModeConcat appends the raw href to the base URL with its
	// trailing slash removed. Correct for root-relative hrefs only.
	LinkModeConcat LinkMode = "concat"

	// LinkModeResolve resolves the href against the current page URL
	// and normalizes the result.
	LinkModeResolve LinkMode = "resolve"
)

var urlParser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// LinkResolver computes the URL of the next page.
type LinkResolver struct {
	mode LinkMode
	base string
}

// NewLinkResolver creates a resolver. baseURL is only used in concat mode.
func NewLinkResolver(mode LinkMode, baseURL string) (*LinkResolver, error) {
	switch mode {
	case LinkModeConcat, LinkModeResolve:
	case "":
		mode = LinkModeConcat
	default:
		return nil, fmt.Errorf("unknown link mode %q", mode)
	}

	return &LinkResolver{
		mode: mode,
		base: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Mode returns the resolver's link mode.
func (r *LinkResolver) Mode() LinkMode {
	return r.mode
}

// Next returns the URL to fetch after current, given the raw href of its
// next-page link.
func (r *LinkResolver) Next(current, href string) (string, error) {
	if r.mode == LinkModeConcat {
		return r.base + href, nil
	}

	u, err := urlParser.ParseRef(current, href)
	if err != nil {
		return "", domain.NewParseError(current, fmt.Sprintf("resolving next link %q", href), err)
	}

	normalized, err := purell.NormalizeURLString(u.Href(true), purell.FlagsSafe)
	if err != nil {
		return "", domain.NewParseError(current, fmt.Sprintf("normalizing next link %q", href), err)
	}

	return normalized, nil
}

// ValidateStartURL checks that raw is an absolute http(s) URL.
func ValidateStartURL(raw string) error {
	if raw == "" {
		return domain.NewValidationError("start_url", "is required")
	}

	u, err := urlParser.Parse(raw)
	if err != nil {
		return domain.NewValidationError("start_url", err.Error())
	}

	if protocol := u.Protocol(); protocol != "http:" && protocol != "https:" {
		return domain.NewValidationError("start_url", fmt.Sprintf("unsupported scheme %q", strings.TrimSuffix(protocol, ":")))
	}

	return nil
}
