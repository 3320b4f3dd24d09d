// Package domain contains core business entities and rules.
package domain

// Quote is one record extracted from a quote listing page.
// It has no knowledge of the markup it was read from.
type Quote struct {
	// Text is the quotation itself.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// Tags are the topics attached to the quote, in page order.
	// Never nil once extracted; a quote without tags has an empty slice.
	Tags []string
}

// Page is the extraction result for a single listing page.
type Page struct {
	// URL is the absolute address the page was fetched from.
	URL string

	// Quotes are the page's records in document order.
	Quotes []Quote

	// NextHref is the raw href of the next-page link, empty when there is none.
	NextHref string
}

// HasNext reports whether the page links to a following page.
func (p *Page) HasNext() bool {
	return p.NextHref != ""
}

// ScrapeResult accumulates quotes across a pagination chain.
type ScrapeResult struct {
	// Quotes holds every page's quotes, page 1 first.
	Quotes []Quote

	// Pages is the number of pages fetched and extracted.
	Pages int

	// Truncated is set when the crawl stopped at the page limit
	// while a next link was still present.
	Truncated bool
}
