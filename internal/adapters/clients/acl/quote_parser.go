package acl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quote-scraper/internal/adapters/html"
	"github.com/jsamuelsen/quote-scraper/internal/domain"
	"github.com/jsamuelsen/quote-scraper/internal/platform/logging"
)

// Selectors locate records and their fields on a listing page.
type Selectors struct {
	Record string
	Text   string
	Author string
	Tag    string
	Next   string
}

// DefaultSelectors matches the quotes.toscrape.com markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Record: ".quote",
		Text:   ".text",
		Author: ".author",
		Tag:    ".tag",
		Next:   ".next > a",
	}
}

// QuotePageParser implements ports.PageParser.
type QuotePageParser struct {
	record html.Selector
	text   html.Selector
	author html.Selector
	tag    html.Selector
	next   html.Selector
	logger *slog.Logger
}

// NewQuotePageParser compiles the selectors. Defaults logger to
// slog.Default() if nil.
func NewQuotePageParser(sel Selectors, logger *slog.Logger) (*QuotePageParser, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := &QuotePageParser{logger: logger}

	for _, s := range []struct {
		name string
		raw  string
		dst  *html.Selector
	}{
		{"record", sel.Record, &p.record},
		{"text", sel.Text, &p.text},
		{"author", sel.Author, &p.author},
		{"tag", sel.Tag, &p.tag},
		{"next", sel.Next, &p.next},
	} {
		compiled, err := html.Compile(s.raw)
		if err != nil {
			return nil, fmt.Errorf("%s selector: %w", s.name, err)
		}
		*s.dst = compiled
	}

	return p, nil
}

// quoteRecord is what a record element yields before validation.
// This is an internal type - never exposed outside the ACL.
type quoteRecord struct {
	index     int
	text      string
	hasText   bool
	author    string
	hasAuthor bool
	tags      []string
}

// ParsePage extracts every record and the next-page href from body.
// A single malformed record fails the whole page.
// Implements ports.PageParser.
func (p *QuotePageParser) ParsePage(ctx context.Context, url string, body []byte) (*domain.Page, error) {
	doc, err := html.Parse(url, body)
	if err != nil {
		return nil, err
	}

	elements := doc.All(p.record)
	records := make([]quoteRecord, 0, len(elements))
	for i, el := range elements {
		records = append(records, p.readRecord(i, el))
	}

	quotes, err := TranslateSlice(records, func(r *quoteRecord) (domain.Quote, error) {
		return p.translateQuote(doc.URL(), r)
	})
	if err != nil {
		return nil, err
	}

	page := &domain.Page{
		URL:      url,
		Quotes:   quotes,
		NextHref: p.nextHref(ctx, doc),
	}

	p.logger.Log(ctx, logging.LevelTrace, "page extracted",
		slog.String("url", url),
		slog.Int("records", len(quotes)),
		slog.String("next_href", page.NextHref))

	return page, nil
}

func (p *QuotePageParser) readRecord(index int, el *html.Element) quoteRecord {
	r := quoteRecord{index: index}
	r.text, r.hasText = el.ChildText(p.text)
	r.author, r.hasAuthor = el.ChildText(p.author)
	r.tags = el.ChildTexts(p.tag)
	return r
}

// translateQuote converts an extracted record to a domain Quote.
func (p *QuotePageParser) translateQuote(url string, r *quoteRecord) (domain.Quote, error) {
	if !r.hasText {
		return domain.Quote{}, domain.NewMissingFieldError(url, "text", p.text.String(), r.index)
	}

	if !r.hasAuthor {
		return domain.Quote{}, domain.NewMissingFieldError(url, "author", p.author.String(), r.index)
	}

	return domain.Quote{
		Text:   r.text,
		Author: r.author,
		Tags:   r.tags,
	}, nil
}

// nextHref returns the href of the first next-page link. A link element
// whose href is absent or blank counts as no next page: following it would
// only re-fetch the base URL.
func (p *QuotePageParser) nextHref(ctx context.Context, doc *html.Document) string {
	el, ok := doc.First(p.next)
	if !ok {
		return ""
	}

	href, _ := el.Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		p.logger.DebugContext(ctx, "next link has no target, stopping",
			slog.String("url", doc.URL()),
			slog.String("selector", p.next.String()))
	}

	return href
}
