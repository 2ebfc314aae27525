package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrContentPatternInvalid = errors.New("blog config: content pattern is invalid")

// ErrStorageProviderUnknown reports a storage provider other than filesystem or bun.
var ErrStorageProviderUnknown = errors.New("blog config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("blog config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("blog config: storage dsn is required for the bun provider")

// ErrCacheTTLInvalid ensures a negative TTL is never accepted.
var ErrCacheTTLInvalid = errors.New("blog config: cache ttl must be zero or positive")
var ErrCacheWatchRequiresCache = errors.New("blog config: cache watch requires cache to be enabled")
var ErrSearchWeightInvalid = errors.New("blog config: search weights must be zero or positive")
var ErrHTTPAddrRequired = errors.New("blog config: http address is required")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

const (
	StorageFilesystem = "filesystem"
	StorageBun        = "bun"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates runtime settings for the blog. Fields keep simple types
// so the same struct decodes from YAML and is overridden from the environment.
type Config struct {
	Content  ContentConfig  `yaml:"content"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	Search   SearchConfig   `yaml:"search"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features Features       `yaml:"features"`
}

// ContentConfig locates the article directory.
type ContentConfig struct {
	Dir             string `yaml:"dir"`
	Pattern         string `yaml:"pattern"`
	CreateIfMissing bool   `yaml:"create_if_missing"`
	SampleFallback  bool   `yaml:"sample_fallback"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// StorageConfig selects where articles are read from. The filesystem provider
// reads markdown directly; bun serves the synced catalog.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Watch   bool          `yaml:"watch"`
}

type SearchConfig struct {
	Weights SearchWeights `yaml:"weights"`
}

// SearchWeights holds per-field relevance weights. All zero means defaults.
type SearchWeights struct {
	Title    int `yaml:"title"`
	Excerpt  int `yaml:"excerpt"`
	Content  int `yaml:"content"`
	Author   int `yaml:"author"`
	Category int `yaml:"category"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	BasePath        string        `yaml:"base_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// Features toggles optional surfaces.
type Features struct {
	Logger bool `yaml:"logger"`
	MCP    bool `yaml:"mcp"`
}

// DefaultConfig returns the settings used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:             "content/posts",
			Pattern:         "*.md",
			CreateIfMissing: true,
			SampleFallback:  true,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
		},
		Storage: StorageConfig{
			Provider: StorageFilesystem,
			Driver:   DriverSQLite,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			BasePath:        "/api",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{
			Logger: true,
			MCP:    true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Content.Pattern); pattern != "" {
		if strings.ContainsAny(pattern, `/\`) {
			return fmt.Errorf("%w: %s", ErrContentPatternInvalid, pattern)
		}
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", StorageFilesystem:
	case StorageBun:
		if driver := normalize(cfg.Storage.Driver); !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.TTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Cache.Watch && !cfg.Cache.Enabled {
		return ErrCacheWatchRequiresCache
	}

	w := cfg.Search.Weights
	for name, value := range map[string]int{
		"title": w.Title, "excerpt": w.Excerpt, "content": w.Content, "author": w.Author, "category": w.Category,
	} {
		if value < 0 {
			return fmt.Errorf("%w: %s", ErrSearchWeightInvalid, name)
		}
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case DriverSQLite, "sqlite3", DriverPostgres, "postgresql", "pg":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
