package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Address != ":8000" || cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.MaxMatches != 50 || cfg.MaxRecommendations != 10 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.GenreFailureAlert {
		t.Error("genre failure alert should be off by default")
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cinematch.yaml")
	yml := "backend_url: http://files.example:5000\nmax_matches: 20\nrequest_timeout: 5s\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("CINEMATCH_MAX_MATCHES", "25")
	t.Setenv("CINEMATCH_GENRE_FAILURE_ALERT", "true")
	t.Setenv("CINEMATCH_TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendURL != "http://files.example:5000" {
		t.Errorf("expected file value, got %q", cfg.BackendURL)
	}
	if cfg.MaxMatches != 25 {
		t.Errorf("expected env to override file, got %d", cfg.MaxMatches)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
	if !cfg.GenreFailureAlert {
		t.Error("expected genre failure alert from env")
	}

	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "10.0.0.2" {
		t.Errorf("expected trusted proxies from env, got %v", cfg.TrustedProxies)
	}

	opts := cfg.ControllerOptions()
	if opts.MaxMatches != 25 || !opts.GenreFailureAlert {
		t.Errorf("unexpected controller options %+v", opts)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad url", func(c *Config) { c.BackendURL = "not a url" }},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }},
		{"zero matches", func(c *Config) { c.MaxMatches = 0 }},
		{"too many matches", func(c *Config) { c.MaxMatches = DefaultMaxMatches + 1 }},
		{"bad trusted proxy", func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/8"} }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"tiny timeout", func(c *Config) { c.RequestTimeout = time.Millisecond }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestNewMovieBackend(t *testing.T) {
	cfg := DefaultConfig()
	backend, cache := cfg.NewMovieBackend()
	if _, ok := backend.(*BackendClient); !ok || cache != nil {
		t.Errorf("expected a bare client by default, got %T", backend)
	}

	cfg.CacheTTL = time.Minute
	backend, cache = cfg.NewMovieBackend()
	if _, ok := backend.(*CachedBackend); !ok || cache == nil {
		t.Errorf("expected a cached backend when cache_ttl is set, got %T", backend)
	}
}
