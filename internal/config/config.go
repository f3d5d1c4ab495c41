// Package config loads and validates environment variables at startup.
// Fail-fast: an invalid value stops the process before anything is wired.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration for the job board.
type Config struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	Port   int    `envconfig:"APP_PORT" default:"8080"`
	Adzuna AdzunaConfig
	Geo    GeoConfig
	Store  StoreConfig
	Skills SkillsConfig
	CORS   CORSConfig
}

// AdzunaConfig configures the remote job-search API. Empty credentials are
// allowed at startup; searches then fail with an authentication error.
type AdzunaConfig struct {
	AppID   string `envconfig:"ADZUNA_APP_ID"`
	AppKey  string `envconfig:"ADZUNA_APP_KEY"`
	BaseURL string `envconfig:"ADZUNA_BASE_URL" default:"https://api.adzuna.com/v1/api/jobs"`
	Country string `envconfig:"ADZUNA_COUNTRY" default:"gb"` // e.g. "gb", "us", "fr"
}

// GeoConfig configures the IP geolocation lookup.
type GeoConfig struct {
	BaseURL string `envconfig:"IPAPI_BASE_URL" default:"https://ipapi.co"`
}

// StoreConfig selects where user job posts are persisted.
// URL schemes: memory://, file://<path>, redis://, postgres://, mysql://.
type StoreConfig struct {
	URL string `envconfig:"STORE_URL" default:"file://wanted-job-posts.json"`
	Key string `envconfig:"STORE_KEY" default:"wanted-job-posts-user"`
}

// SkillsConfig controls the language-model skill extraction. It ships
// disabled; the endpoint then answers with empty skill lists.
type SkillsConfig struct {
	Enabled     bool   `envconfig:"SKILLS_EXTRACTION_ENABLED" default:"false"`
	Endpoint    string `envconfig:"SKILLS_ENDPOINT" default:"http://localhost:8080/api/extract-skills"`
	OpenAIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:5173,http://localhost:4173"`
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if _, err := url.ParseRequestURI(c.Adzuna.BaseURL); err != nil {
		return fmt.Errorf("ADZUNA_BASE_URL is not a valid URL: %w", err)
	}
	if _, err := url.ParseRequestURI(c.Geo.BaseURL); err != nil {
		return fmt.Errorf("IPAPI_BASE_URL is not a valid URL: %w", err)
	}
	if len(c.Adzuna.Country) != 2 {
		return fmt.Errorf("ADZUNA_COUNTRY must be a two-letter region code, got %q", c.Adzuna.Country)
	}
	if !strings.Contains(c.Store.URL, "://") {
		return fmt.Errorf("STORE_URL must include a scheme (memory://, file://, redis://, postgres://, mysql://), got %q", c.Store.URL)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}
	return nil
}

// IsDevelopment reports whether the process runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CORSOrigins returns the trimmed, non-empty trusted origins.
func (c *Config) CORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// HasAdzunaCredentials reports whether both Adzuna credentials are set.
func (c *Config) HasAdzunaCredentials() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}
