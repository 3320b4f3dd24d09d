package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
	"github.com/jsamuelsen/quote-scraper/internal/testsite"
)

// execute runs the root command in a scratch directory and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

func serve(t *testing.T, pages map[string]testsite.Page) (*testsite.Site, string) {
	t.Helper()

	site, server := testsite.NewServer(pages)
	t.Cleanup(server.Close)

	return site, server.URL
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return records
}

func TestRootCmd_WritesAllPages(t *testing.T) {
	_, baseURL := serve(t, testsite.TwoPages())

	stdout, err := execute(t, "out.csv", "--base-url", baseURL, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "wrote 4 quotes from 2 pages to out.csv\n", stdout)

	records := readCSV(t, "out.csv")
	require.Len(t, records, 5)
	assert.Equal(t, []string{"text", "author", "tags"}, records[0])
	assert.Equal(t, "Albert Einstein", records[1][1])
	assert.Equal(t, "[change deep-thoughts thinking world]", records[1][2])
	assert.Equal(t, "J.K. Rowling", records[2][1])
	assert.Equal(t, "“It is our choices, Harry, that show what we truly are, far more than our abilities.”", records[2][0])
	assert.Equal(t, "Marilyn Monroe", records[3][1])
	assert.Equal(t, "Steve Martin", records[4][1])
	assert.Equal(t, "[]", records[4][2])
}

func TestRootCmd_DefaultOutputPath(t *testing.T) {
	_, baseURL := serve(t, map[string]testsite.Page{"/": {}})

	stdout, err := execute(t, "--base-url", baseURL, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "to quotes.csv")

	data, err := os.ReadFile("quotes.csv")
	require.NoError(t, err)
	assert.Equal(t, "text,author,tags\n", string(data))
}

func TestRootCmd_Latin1PageWritesUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<html><head><meta charset=\"iso-8859-1\"></head><body>" +
			"<div class=\"quote\"><span class=\"text\">Caf\xe9 cr\xe8me</span>" +
			"<small class=\"author\">Ren\xe9</small><a class=\"tag\">fran\xe7ais</a></div>" +
			"</body></html>"))
	}))
	t.Cleanup(server.Close)

	_, err := execute(t, "out.csv", "--base-url", server.URL, "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile("out.csv")
	require.NoError(t, err)
	assert.True(t, utf8.Valid(data))
	assert.Equal(t, "text,author,tags\nCafé crème,René,[français]\n", string(data))
}

func TestRootCmd_Deterministic(t *testing.T) {
	_, baseURL := serve(t, testsite.TwoPages())

	_, err := execute(t, "first.csv", "--base-url", baseURL, "--log-level", "error")
	require.NoError(t, err)
	first, err := os.ReadFile("first.csv")
	require.NoError(t, err)

	_, err = execute(t, "second.csv", "--base-url", baseURL, "--log-level", "error")
	require.NoError(t, err)
	second, err := os.ReadFile("second.csv")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRootCmd_MissingAuthorWritesNothing(t *testing.T) {
	pages := testsite.TwoPages()
	second := pages["/page/2/"]
	second.Quotes[1].OmitAuthor = true
	pages["/page/2/"] = second

	_, baseURL := serve(t, pages)

	_, err := execute(t, "out.csv", "--base-url", baseURL, "--log-level", "error")
	require.Error(t, err)

	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "author", missing.Field)
	assert.Equal(t, 1, missing.Index)

	assert.NoFileExists(t, "out.csv")
}

func TestRootCmd_ErrorStatusWritesNothing(t *testing.T) {
	pages := testsite.TwoPages()
	second := pages["/page/2/"]
	second.Status = http.StatusInternalServerError
	pages["/page/2/"] = second

	_, baseURL := serve(t, pages)

	_, err := execute(t, "out.csv", "--base-url", baseURL, "--log-level", "error")
	require.Error(t, err)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.NoFileExists(t, "out.csv")
}

func TestRootCmd_MaxPagesStopsCycle(t *testing.T) {
	site, baseURL := serve(t, testsite.Cycle())

	stdout, err := execute(t, "out.csv",
		"--base-url", baseURL,
		"--max-pages", "3",
		"--metrics-file", "run.prom",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Equal(t, "wrote 6 quotes from 3 pages to out.csv\n", stdout)
	assert.Equal(t, 2, site.Hits("/"))
	assert.Equal(t, 1, site.Hits("/page/2/"))

	prom, err := os.ReadFile("run.prom")
	require.NoError(t, err)
	assert.Contains(t, string(prom), "quotescraper_pages_fetched_total 3")
	assert.Contains(t, string(prom), "quotescraper_last_run_success 1")
}

func TestRootCmd_MetricsFileOnFailure(t *testing.T) {
	_, baseURL := serve(t, map[string]testsite.Page{"/": {Status: http.StatusNotFound}})

	_, err := execute(t, "out.csv", "--base-url", baseURL, "--metrics-file", "run.prom", "--log-level", "error")
	require.Error(t, err)

	prom, err := os.ReadFile("run.prom")
	require.NoError(t, err)
	assert.Contains(t, string(prom), "quotescraper_last_run_success 0")
}

func TestRootCmd_ResolveMode(t *testing.T) {
	_, baseURL := serve(t, map[string]testsite.Page{
		"/tag/love/":        {Quotes: []testsite.Quote{{Text: "a", Author: "b"}}, Next: "page/2/"},
		"/tag/love/page/2/": {Quotes: []testsite.Quote{{Text: "c", Author: "d"}}},
	})

	t.Setenv("APP_SITE__START_PATH", "/tag/love/")

	stdout, err := execute(t, "out.csv", "--base-url", baseURL, "--link-mode", "resolve", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "wrote 2 quotes from 2 pages to out.csv\n", stdout)
}

func TestRootCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "too many arguments",
			args:        []string{"a.csv", "b.csv"},
			errContains: "accepts at most 1 arg(s)",
		},
		{
			name:        "unknown link mode",
			args:        []string{"--link-mode", "follow"},
			errContains: "pagination.linkmode must be one of: concat resolve",
		},
		{
			name:        "negative max pages",
			args:        []string{"--max-pages", "-1"},
			errContains: "invalid config",
		},
		{
			name:        "bad base url",
			args:        []string{"--base-url", "not a url"},
			errContains: "site.baseurl must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOptions_Overrides(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--max-pages", "5", "--log-level", "debug"}))

	opts := &options{maxPages: 5, logLevel: "debug"}
	got := opts.overrides(cmd, []string{"custom.csv"})

	assert.Equal(t, map[string]any{
		"output.path":          "custom.csv",
		"pagination.max_pages": 5,
		"log.level":            "debug",
	}, got)
}

func TestRootCmd_AbsoluteOutputPath(t *testing.T) {
	_, baseURL := serve(t, map[string]testsite.Page{"/": {}})

	dir := t.TempDir()
	out := filepath.Join(dir, "nested.csv")

	_, err := execute(t, out, "--base-url", baseURL, "--log-level", "error")
	require.NoError(t, err)
	assert.FileExists(t, out)
}
