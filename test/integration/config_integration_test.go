//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-scraper/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-scraper/internal/app"
	"github.com/jsamuelsen/quote-scraper/internal/platform/config"
	"github.com/jsamuelsen/quote-scraper/internal/platform/metrics"
	"github.com/jsamuelsen/quote-scraper/internal/testsite"
)

// writeProfile writes configs/<profile>.yaml under dir.
func writeProfile(t *testing.T, dir, profile, body string) {
	t.Helper()

	configs := filepath.Join(dir, "configs")
	require.NoError(t, os.MkdirAll(configs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configs, profile+".yaml"), []byte(body), 0o600))
}

// pipelineFromConfig maps loaded configuration onto the pipeline.
func pipelineFromConfig(cfg *config.Config, run *metrics.Run) pipelineConfig {
	return pipelineConfig{
		BaseURL:  cfg.Site.BaseURL,
		StartURL: cfg.Site.StartURL(),
		Output:   cfg.Output.Path,
		LinkMode: app.LinkMode(cfg.Pagination.LinkMode),
		MaxPages: cfg.Pagination.MaxPages,
		Selectors: acl.Selectors{
			Record: cfg.Site.Selectors.Record,
			Text:   cfg.Site.Selectors.Text,
			Author: cfg.Site.Selectors.Author,
			Tag:    cfg.Site.Selectors.Tag,
			Next:   cfg.Site.Selectors.Next,
		},
		Metrics: run,
	}
}

// TestConfig_ProfileDrivesExport verifies a profile file configures the
// site, selectors and output of a full export.
func TestConfig_ProfileDrivesExport(t *testing.T) {
	_, server := testsite.NewServer(testsite.TwoPages())
	defer server.Close()

	dir := t.TempDir()
	t.Chdir(dir)

	writeProfile(t, dir, "test", fmt.Sprintf(`
app:
  environment: test
site:
  base_url: %s
  selectors:
    record: div.quote
    text: span.text
    author: small.author
    tag: div.tags a.tag
    next: li.next a
output:
  path: fixture.csv
`, server.URL))

	cfg, err := config.Load("test", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	run := metrics.NewRun()
	summary, err := runPipeline(context.Background(), pipelineFromConfig(cfg, run))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Pages)
	assert.Equal(t, 4, summary.Quotes)
	assert.FileExists(t, filepath.Join(dir, "fixture.csv"))

	require.NoError(t, run.WriteTextfile(filepath.Join(dir, "run.prom")))
	prom, err := os.ReadFile(filepath.Join(dir, "run.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "quotescraper_quotes_extracted_total 4")
}

// TestConfig_EnvOverridesProfile verifies APP_ variables beat profile values.
func TestConfig_EnvOverridesProfile(t *testing.T) {
	_, server := testsite.NewServer(testsite.Cycle())
	defer server.Close()

	dir := t.TempDir()
	t.Chdir(dir)

	writeProfile(t, dir, "test", fmt.Sprintf(`
app:
  environment: test
site:
  base_url: %s
pagination:
  max_pages: 10
output:
  path: cycle.csv
`, server.URL))

	t.Setenv("APP_PAGINATION__MAX_PAGES", "3")
	t.Setenv("APP_PAGINATION__LINK_MODE", "resolve")

	cfg, err := config.Load("test", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Pagination.MaxPages)

	summary, err := runPipeline(context.Background(), pipelineFromConfig(cfg, nil))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Pages)
	assert.True(t, summary.Truncated)
}

// TestConfig_InvalidSelectorRejected verifies selectors are checked at load time.
func TestConfig_InvalidSelectorRejected(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeProfile(t, dir, "test", `
app:
  environment: test
site:
  selectors:
    record: "div["
`)

	cfg, err := config.Load("test", nil)
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a valid CSS selector")
}
