package html

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
)

// Document is a parsed page.
type Document struct {
	url string
	doc *goquery.Document
}

// Element is a single matched node.
type Element struct {
	sel *goquery.Selection
}

// Parse builds a Document from a page body. Bodies with no markup at all
// (empty, plain text, JSON) are rejected with a *domain.ParseError; the
// parser is otherwise lenient, as browsers are. A body that is not UTF-8 is
// decoded using its <meta> charset first.
func Parse(url string, body []byte) (*Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewParseError(url, "empty document", nil)
	}

	body, err := ToUTF8(body, "")
	if err != nil {
		return nil, domain.NewParseError(url, "decoding charset", err)
	}

	hasMarkup, err := containsMarkup(body)
	if err != nil {
		return nil, domain.NewParseError(url, "reading markup", err)
	}
	if !hasMarkup {
		return nil, domain.NewParseError(url, "no HTML markup", nil)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewParseError(url, "building document", err)
	}

	return &Document{url: url, doc: doc}, nil
}

// containsMarkup reports whether the tokenizer sees any tag or doctype.
func containsMarkup(body []byte) (bool, error) {
	z := nethtml.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return false, nil
			}
			return false, z.Err()
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken, nethtml.DoctypeToken:
			return true, nil
		default:
		}
	}
}

// URL returns the address the document was fetched from.
func (d *Document) URL() string {
	return d.url
}

// All returns every element matching sel, in document order.
func (d *Document) All(sel Selector) []*Element {
	return elements(d.doc.FindMatcher(sel.sel))
}

// First returns the first element matching sel.
func (d *Document) First(sel Selector) (*Element, bool) {
	match := d.doc.FindMatcher(sel.sel)
	if match.Length() == 0 {
		return nil, false
	}
	return &Element{sel: match.First()}, true
}

// ChildText returns the trimmed text of the first descendant matching sel.
func (e *Element) ChildText(sel Selector) (string, bool) {
	match := e.sel.FindMatcher(sel.sel)
	if match.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(match.First().Text()), true
}

// ChildTexts returns the trimmed text of every descendant matching sel, in
// document order. The result is never nil.
func (e *Element) ChildTexts(sel Selector) []string {
	match := e.sel.FindMatcher(sel.sel)
	texts := make([]string, 0, match.Length())
	match.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func elements(match *goquery.Selection) []*Element {
	out := make([]*Element, 0, match.Length())
	match.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}
