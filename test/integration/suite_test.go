//go:build integration

package integration

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/quote-scraper/internal/app"
	"github.com/jsamuelsen/quote-scraper/internal/domain"
	"github.com/jsamuelsen/quote-scraper/internal/testsite"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	pages    map[string]testsite.Page
	site     *testsite.Site
	server   *httptest.Server
	dir      string
	output   string
	linkMode app.LinkMode
	maxPages int
	summary  *app.ExportSummary
	err      error
}

// reset clears scenario state and stops the fixture server.
func (tc *testContext) reset() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.dir != "" {
		_ = os.RemoveAll(tc.dir)
	}

	*tc = testContext{pages: make(map[string]testsite.Page)}
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}
	tc.reset()

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()

		dir, err := os.MkdirTemp("", "quotescraper-bdd-")
		if err != nil {
			return ctx, err
		}
		tc.dir = dir
		tc.output = filepath.Join(dir, "quotes.csv")

		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a page "([^"]*)" with quotes:$`, tc.aPageWithQuotes)
	ctx.Step(`^the page "([^"]*)" links to "([^"]*)"$`, tc.thePageLinksTo)
	ctx.Step(`^the page "([^"]*)" responds with status (\d+)$`, tc.thePageRespondsWithStatus)
	ctx.Step(`^the quote by "([^"]*)" on "([^"]*)" has no author element$`, tc.theQuoteHasNoAuthor)
	ctx.Step(`^next links are resolved in "([^"]*)" mode$`, tc.nextLinksAreResolvedIn)
	ctx.Step(`^the crawl is limited to (\d+) pages?$`, tc.theCrawlIsLimitedTo)
	ctx.Step(`^I scrape starting at "([^"]*)"$`, tc.iScrapeStartingAt)
	ctx.Step(`^the export succeeds$`, tc.theExportSucceeds)
	ctx.Step(`^the export fails with a (network|parse|missing field) error$`, tc.theExportFailsWith)
	ctx.Step(`^the CSV contains:$`, tc.theCSVContains)
	ctx.Step(`^no output file is written$`, tc.noOutputFileIsWritten)
	ctx.Step(`^the summary reports (\d+) pages? and (\d+) quotes?$`, tc.theSummaryReports)
	ctx.Step(`^the summary is truncated$`, tc.theSummaryIsTruncated)
	ctx.Step(`^the page "([^"]*)" was requested (\d+) times?$`, tc.thePageWasRequested)
}

// aPageWithQuotes defines a page from a text|author|tags table.
func (tc *testContext) aPageWithQuotes(uri string, table *godog.Table) error {
	page := tc.pages[uri]

	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 3 {
			return fmt.Errorf("row %d: expected text|author|tags", i)
		}

		tags := []string{}
		if raw := strings.TrimSpace(row.Cells[2].Value); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				tags = append(tags, strings.TrimSpace(tag))
			}
		}

		page.Quotes = append(page.Quotes, testsite.Quote{
			Text:   row.Cells[0].Value,
			Author: row.Cells[1].Value,
			Tags:   tags,
		})
	}

	tc.pages[uri] = page

	return nil
}

func (tc *testContext) thePageLinksTo(uri, href string) error {
	page := tc.pages[uri]
	page.Next = href
	tc.pages[uri] = page

	return nil
}

func (tc *testContext) thePageRespondsWithStatus(uri string, status int) error {
	page := tc.pages[uri]
	page.Status = status
	tc.pages[uri] = page

	return nil
}

func (tc *testContext) theQuoteHasNoAuthor(author, uri string) error {
	page, ok := tc.pages[uri]
	if !ok {
		return fmt.Errorf("page %q is not defined", uri)
	}

	for i := range page.Quotes {
		if page.Quotes[i].Author == author {
			page.Quotes[i].OmitAuthor = true
			return nil
		}
	}

	return fmt.Errorf("no quote by %q on %q", author, uri)
}

func (tc *testContext) nextLinksAreResolvedIn(mode string) error {
	tc.linkMode = app.LinkMode(mode)
	return nil
}

func (tc *testContext) theCrawlIsLimitedTo(pages int) error {
	tc.maxPages = pages
	return nil
}

// iScrapeStartingAt serves the defined pages and runs one export.
func (tc *testContext) iScrapeStartingAt(uri string) error {
	tc.site, tc.server = testsite.NewServer(tc.pages)

	tc.summary, tc.err = runPipeline(context.Background(), pipelineConfig{
		BaseURL:  tc.server.URL,
		StartURL: tc.server.URL + uri,
		Output:   tc.output,
		LinkMode: tc.linkMode,
		MaxPages: tc.maxPages,
	})

	return nil
}

func (tc *testContext) theExportSucceeds() error {
	if tc.err != nil {
		return fmt.Errorf("expected success, got: %w", tc.err)
	}

	return nil
}

func (tc *testContext) theExportFailsWith(kind string) error {
	if tc.err == nil {
		return errors.New("expected an error, export succeeded")
	}

	var ok bool
	switch kind {
	case "network":
		ok = domain.IsNetwork(tc.err)
	case "parse":
		ok = domain.IsParse(tc.err)
	case "missing field":
		ok = domain.IsMissingField(tc.err)
	}

	if !ok {
		return fmt.Errorf("expected a %s error, got: %v", kind, tc.err)
	}

	return nil
}

// theCSVContains compares the output file with a table, header included.
func (tc *testContext) theCSVContains(table *godog.Table) error {
	f, err := os.Open(tc.output)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("reading output: %w", err)
	}

	if len(records) != len(table.Rows) {
		return fmt.Errorf("expected %d rows, got %d: %v", len(table.Rows), len(records), records)
	}

	for i, row := range table.Rows {
		if len(records[i]) != len(row.Cells) {
			return fmt.Errorf("row %d: expected %d fields, got %d", i, len(row.Cells), len(records[i]))
		}

		for j, cell := range row.Cells {
			if records[i][j] != cell.Value {
				return fmt.Errorf("row %d field %d: expected %q, got %q", i, j, cell.Value, records[i][j])
			}
		}
	}

	return nil
}

func (tc *testContext) noOutputFileIsWritten() error {
	if _, err := os.Stat(tc.output); !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("expected no output file at %s", tc.output)
	}

	return nil
}

func (tc *testContext) theSummaryReports(pages, quotes int) error {
	if tc.summary == nil {
		return errors.New("no summary")
	}

	if tc.summary.Pages != pages || tc.summary.Quotes != quotes {
		return fmt.Errorf("expected %d pages and %d quotes, got %d and %d",
			pages, quotes, tc.summary.Pages, tc.summary.Quotes)
	}

	return nil
}

func (tc *testContext) theSummaryIsTruncated() error {
	if tc.summary == nil || !tc.summary.Truncated {
		return errors.New("expected a truncated crawl")
	}

	return nil
}

func (tc *testContext) thePageWasRequested(uri string, times int) error {
	if got := tc.site.Hits(uri); got != times {
		return fmt.Errorf("expected %q to be requested %d times, got %d", uri, times, got)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
