package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BLOG_"

// Options captures the global CLI inputs that shape the runtime config.
type Options struct {
	ConfigPath string
	EnvFile    string
	ContentDir string
	LogLevel   string
	LogFormat  string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// LoadConfig layers defaults, the YAML file, BLOG_* environment variables and
// explicit flag values, in that order.
func LoadConfig(opts Options) (blog.Config, error) {
	cfg := blog.DefaultConfig()

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return cfg, err
	}

	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
		cfg.Logging.Provider = "gologger"
	}
	return cfg, nil
}

// BuildModule validates cfg and constructs the blog module.
func BuildModule(cfg blog.Config, opts ...di.Option) (*blog.Module, error) {
	module, err := blog.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}
	return module, nil
}

func loadEnvFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

type envBinding struct {
	key   string
	apply func(cfg *blog.Config, value string) error
}

var envBindings = []envBinding{
	{"CONTENT_DIR", func(cfg *blog.Config, v string) error { cfg.Content.Dir = v; return nil }},
	{"CONTENT_PATTERN", func(cfg *blog.Config, v string) error { cfg.Content.Pattern = v; return nil }},
	{"CONTENT_SAMPLE_FALLBACK", func(cfg *blog.Config, v string) error {
		return setBool(&cfg.Content.SampleFallback, v)
	}},
	{"MARKDOWN_SANITIZE", func(cfg *blog.Config, v string) error { return setBool(&cfg.Markdown.Sanitize, v) }},
	{"STORAGE_PROVIDER", func(cfg *blog.Config, v string) error { cfg.Storage.Provider = v; return nil }},
	{"STORAGE_DRIVER", func(cfg *blog.Config, v string) error { cfg.Storage.Driver = v; return nil }},
	{"STORAGE_DSN", func(cfg *blog.Config, v string) error { cfg.Storage.DSN = v; return nil }},
	{"CACHE_ENABLED", func(cfg *blog.Config, v string) error { return setBool(&cfg.Cache.Enabled, v) }},
	{"CACHE_WATCH", func(cfg *blog.Config, v string) error { return setBool(&cfg.Cache.Watch, v) }},
	{"CACHE_TTL", func(cfg *blog.Config, v string) error {
		ttl, err := cast.ToDurationE(v)
		if err != nil {
			return err
		}
		cfg.Cache.TTL = ttl
		return nil
	}},
	{"HTTP_ADDR", func(cfg *blog.Config, v string) error { cfg.HTTP.Addr = v; return nil }},
	{"HTTP_BASE_PATH", func(cfg *blog.Config, v string) error { cfg.HTTP.BasePath = v; return nil }},
	{"LOG_PROVIDER", func(cfg *blog.Config, v string) error { cfg.Logging.Provider = v; return nil }},
	{"LOG_LEVEL", func(cfg *blog.Config, v string) error { cfg.Logging.Level = v; return nil }},
	{"LOG_FORMAT", func(cfg *blog.Config, v string) error { cfg.Logging.Format = v; return nil }},
}

func applyEnv(cfg *blog.Config, getenv func(string) string) error {
	for _, binding := range envBindings {
		value := strings.TrimSpace(getenv(EnvPrefix + binding.key))
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return fmt.Errorf("env %s%s: %w", EnvPrefix, binding.key, err)
		}
	}
	return nil
}

func setBool(target *bool, value string) error {
	parsed, err := cast.ToBoolE(value)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}
