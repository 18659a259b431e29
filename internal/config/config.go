package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can say "5m" or "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type QticketsConfig struct {
	// BaseURL is the provider REST root.
	BaseURL string `yaml:"base_url"`
	// APIKey is injected as a bearer token; usually set via env instead
	// of the file.
	APIKey string `yaml:"api_key"`
	// MaxPages bounds the listing pagination walk.
	MaxPages int `yaml:"max_pages"`
	// FetchTimeout is the overall deadline for one full aggregation.
	FetchTimeout Duration `yaml:"fetch_timeout"`
	// RequestTimeout applies to each individual provider request.
	RequestTimeout Duration `yaml:"request_timeout"`
}

type ProxyConfig struct {
	// CacheTTL is how long proxied GET responses are served from memory.
	CacheTTL Duration `yaml:"cache_ttl"`
	// PurgeCron schedules eviction of expired cache entries.
	PurgeCron string `yaml:"purge_cron"`
}

// Config is the top-level service configuration, loaded from YAML with a
// few environment overrides for deploy-time secrets.
type Config struct {
	Listen     string         `yaml:"listen"`
	PublicURL  string         `yaml:"public_url"`
	AdminToken string         `yaml:"admin_token"`
	Qtickets   QticketsConfig `yaml:"qtickets"`
	Proxy      ProxyConfig    `yaml:"proxy"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen: ":8080",
		Qtickets: QticketsConfig{
			BaseURL:        "https://qtickets.ru/api/rest/v1",
			MaxPages:       50,
			FetchTimeout:   Duration(30 * time.Second),
			RequestTimeout: Duration(15 * time.Second),
		},
		Proxy: ProxyConfig{
			CacheTTL:  Duration(5 * time.Minute),
			PurgeCron: "*/5 * * * *",
		},
	}
}

// Normalize fills missing values with defaults so partial configs keep
// working.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Qtickets.BaseURL == "" {
		c.Qtickets.BaseURL = def.Qtickets.BaseURL
	}
	if c.Qtickets.MaxPages <= 0 {
		c.Qtickets.MaxPages = def.Qtickets.MaxPages
	}
	if c.Qtickets.FetchTimeout <= 0 {
		c.Qtickets.FetchTimeout = def.Qtickets.FetchTimeout
	}
	if c.Qtickets.RequestTimeout <= 0 {
		c.Qtickets.RequestTimeout = def.Qtickets.RequestTimeout
	}
	if c.Proxy.CacheTTL <= 0 {
		c.Proxy.CacheTTL = def.Proxy.CacheTTL
	}
	if c.Proxy.PurgeCron == "" {
		c.Proxy.PurgeCron = def.Proxy.PurgeCron
	}
}

// applyEnv lets deployment secrets override the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
	if v := os.Getenv("QTICKETS_API_KEY"); v != "" {
		c.Qtickets.APIKey = v
	}
	if v := os.Getenv("QTICKETS_API_URL"); v != "" {
		c.Qtickets.BaseURL = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.AdminToken = v
	}
	if v := os.Getenv("PUBLIC_URL"); v != "" {
		c.PublicURL = v
	}
}

// Load reads configuration from the given YAML path. A missing file is not
// an error: defaults plus environment overrides apply. An empty path skips
// the file entirely.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.Normalize()
	cfg.applyEnv()
	return cfg, nil
}
