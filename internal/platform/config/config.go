// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultBaseURL is the site crawled when nothing else is configured.
	DefaultBaseURL = "https://quotes.toscrape.com/"

	// DefaultOutputPath is the CSV file written when no path is given.
	DefaultOutputPath = "quotes.csv"

	// DefaultClientTimeout bounds every page request.
	DefaultClientTimeout = 30 * time.Second

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultTransportIdleConnTimeout is the default idle connection timeout.
	DefaultTransportIdleConnTimeout = 90 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// ProfileEnvVar selects the configuration profile. It is read by the
// command, not mapped onto a key.
const ProfileEnvVar = "APP_ENVIRONMENT"

// Link modes for following the next-page href.
const (
	// LinkModeConcat appends the raw href to the base URL.
	LinkModeConcat = "concat"

	// LinkModeResolve resolves the href against the current page URL.
	LinkModeResolve = "resolve"
)

// Config is the root configuration structure.
type Config struct {
	App        AppConfig        `koanf:"app"        validate:"required"`
	Log        LogConfig        `koanf:"log"        validate:"required"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Client     ClientConfig     `koanf:"client"     validate:"required"`
	Site       SiteConfig       `koanf:"site"       validate:"required"`
	Pagination PaginationConfig `koanf:"pagination" validate:"required"`
	Output     OutputConfig     `koanf:"output"     validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains settings for the page-fetching HTTP client.
type ClientConfig struct {
	Timeout   time.Duration   `koanf:"timeout"    validate:"required,min=100ms"`
	UserAgent string          `koanf:"user_agent"`
	Transport TransportConfig `koanf:"transport"  validate:"required"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// SiteConfig describes the site being crawled.
type SiteConfig struct {
	BaseURL   string          `koanf:"base_url"   validate:"required,url"`
	StartPath string          `koanf:"start_path"`
	Selectors SelectorsConfig `koanf:"selectors"  validate:"required"`
}

// StartURL is the first page fetched: base URL plus start path.
func (s SiteConfig) StartURL() string {
	if s.StartPath == "" {
		return s.BaseURL
	}
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(s.StartPath, "/")
}

// SelectorsConfig holds the CSS selectors used to locate records and fields.
type SelectorsConfig struct {
	Record string `koanf:"record" validate:"required,selector"`
	Text   string `koanf:"text"   validate:"required,selector"`
	Author string `koanf:"author" validate:"required,selector"`
	Tag    string `koanf:"tag"    validate:"required,selector"`
	Next   string `koanf:"next"   validate:"required,selector"`
}

// PaginationConfig controls how next-page links are followed.
type PaginationConfig struct {
	LinkMode string `koanf:"link_mode" validate:"required,oneof=concat resolve"`
	MaxPages int    `koanf:"max_pages" validate:"min=0"`
}

// OutputConfig contains output file settings.
type OutputConfig struct {
	Path        string `koanf:"path"         validate:"required"`
	MetricsFile string `koanf:"metrics_file"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotescraper",
		"app.version":     "dev",
		"app.environment": "local",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotescraper.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotescraper",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           DefaultClientTimeout.String(),
		"client.user_agent":                        "",
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       DefaultTransportIdleConnTimeout.String(),

		"site.base_url":         DefaultBaseURL,
		"site.start_path":       "",
		"site.selectors.record": ".quote",
		"site.selectors.text":   ".text",
		"site.selectors.author": ".author",
		"site.selectors.tag":    ".tag",
		"site.selectors.next":   ".next > a",

		"pagination.link_mode": LinkModeConcat,
		"pagination.max_pages": 0,

		"output.path":         DefaultOutputPath,
		"output.metrics_file": "",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Overrides (command-line flags, keyed by dotted path)
//  2. Environment variables (APP_ prefix)
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	var unknown []string
	known := defaults()
	err = k.Load(env.Provider("APP_", ".", func(name string) string {
		if name == ProfileEnvVar {
			return ""
		}
		key := envKey(name)
		if _, ok := known[key]; !ok {
			unknown = append(unknown, name)
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown environment variables %s (separate sections with __, e.g. APP_SITE__BASE_URL)",
			strings.Join(unknown, ", "))
	}

	// 5. Apply explicit overrides
	if len(overrides) > 0 {
		err = k.Load(confmap.Provider(overrides, "."), nil)
		if err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_SITE__BASE_URL style names onto dotted koanf keys. Only a
// double underscore separates sections; single underscores belong to the key.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
