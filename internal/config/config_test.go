package config

import (
	"strings"
	"testing"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Adzuna.Country != "gb" {
		t.Errorf("Adzuna.Country = %q, want gb", cfg.Adzuna.Country)
	}
	if cfg.Store.Key != "wanted-job-posts-user" {
		t.Errorf("Store.Key = %q", cfg.Store.Key)
	}
	if cfg.Skills.Enabled {
		t.Error("skill extraction must be disabled by default")
	}
	if cfg.HasAdzunaCredentials() {
		t.Error("credentials should be absent by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	setEnv(t, map[string]string{
		"APP_ENV":                   "production",
		"APP_PORT":                  "9090",
		"ADZUNA_APP_ID":             "id",
		"ADZUNA_APP_KEY":            "key",
		"STORE_URL":                 "memory://",
		"SKILLS_EXTRACTION_ENABLED": "true",
		"CORS_TRUSTED_ORIGINS":      "http://a.test, ,http://b.test",
	})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !cfg.HasAdzunaCredentials() {
		t.Error("expected credentials")
	}
	if !cfg.Skills.Enabled {
		t.Error("expected skills enabled")
	}
	if got := cfg.CORSOrigins(); len(got) != 2 || got[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", got)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging-ish")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "invalid environment") {
		t.Errorf("Load err = %v, want invalid environment", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := func() Config {
		return Config{
			Env:    "test",
			Port:   8080,
			Adzuna: AdzunaConfig{BaseURL: "https://api.adzuna.com/v1/api/jobs", Country: "gb"},
			Geo:    GeoConfig{BaseURL: "https://ipapi.co"},
			Store:  StoreConfig{URL: "memory://", Key: "k"},
		}
	}

	cases := map[string]func(c *Config){
		"port":    func(c *Config) { c.Port = 0 },
		"country": func(c *Config) { c.Adzuna.Country = "gbr" },
		"scheme":  func(c *Config) { c.Store.URL = "posts.json" },
		"key":     func(c *Config) { c.Store.Key = " " },
		"adzuna":  func(c *Config) { c.Adzuna.BaseURL = "not a url" },
	}
	for name, mutate := range cases {
		c := base()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", name)
		}
	}

	ok := base()
	if err := ok.Validate(); err != nil {
		t.Errorf("base config invalid: %v", err)
	}
}
