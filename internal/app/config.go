package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (MENU_ prefix), flags, or YAML config files.
type Config struct {
	Addr       string `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	APIBaseURL string `usage:"Base origin of the restaurant backend API (MENU_API_BASE_URL or API_BASE)" flag:"api-base-url"`
	StateDir   string `default:"." usage:"Directory holding the persisted contact-settings snapshot" flag:"state-dir"`
	Upstream   UpstreamConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Graceful   GracefulConfig
}

// UpstreamConfig controls backend fetch behaviour.
type UpstreamConfig struct {
	Timeout time.Duration `default:"10s" usage:"Per-request timeout for backend calls"`
	FanOut  int           `default:"4"   usage:"Max concurrent per-category product fetches" flag:"fan-out"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "MENU",
		Files:     []string{"config.yaml", "/etc/menu/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.APIBaseURL == "" {
		return nil, errors.New("backend API base URL is required: set MENU_API_BASE_URL or API_BASE")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like API_BASE and PORT to the
// application's MENU_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.APIBaseURL == "" {
		if v := os.Getenv("API_BASE"); v != "" {
			c.APIBaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
