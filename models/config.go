package models

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

const (
	// EnvPrefix marks the environment variables read into Config,
	// e.g. CINEMATCH_BACKEND_URL sets backend_url.
	EnvPrefix = "CINEMATCH_"

	// ConfigPathEnvVar overrides the YAML config file location.
	ConfigPathEnvVar = "CINEMATCH_CONFIG"

	// DefaultConfigFile is read when present and no override is set.
	DefaultConfigFile = "cinematch.yaml"

	devSessionSecret = "development-only-secret-do-not-use-in-production"
)

// Config holds runtime settings. Precedence: env > YAML file > defaults.
type Config struct {
	Address            string        `koanf:"address" validate:"required"`
	BackendURL         string        `koanf:"backend_url" validate:"required,url"`
	RequestTimeout     time.Duration `koanf:"request_timeout"`
	MaxMatches         int           `koanf:"max_matches" validate:"gte=1,lte=50"`
	MaxRecommendations int           `koanf:"max_recommendations" validate:"gte=1,lte=100"`
	TitlesFile         string        `koanf:"titles_file"`
	LogLevel           string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	SessionSecret      string        `koanf:"session_secret" validate:"min=32"`
	SessionIdleTimeout time.Duration `koanf:"session_idle_timeout"`
	RateLimitPerSecond float64       `koanf:"rate_limit_per_second" validate:"gte=0"`
	RateLimitBurst     int           `koanf:"rate_limit_burst" validate:"gte=0"`
	TrustedProxies     []string      `koanf:"trusted_proxies" validate:"dive,ip"` // peers whose X-Forwarded-For is believed
	MetricsAddress     string        `koanf:"metrics_address"`
	GenreFailureAlert  bool          `koanf:"genre_failure_alert"`
	CacheTTL           time.Duration `koanf:"cache_ttl"` // 0 (default) disables the lookup cache
	CacheMaxEntries    int           `koanf:"cache_max_entries" validate:"gte=0"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Address:            ":8000",
		BackendURL:         "http://localhost:5000",
		RequestTimeout:     30 * time.Second,
		MaxMatches:         DefaultMaxMatches,
		MaxRecommendations: DefaultMaxRecommendations,
		LogLevel:           "info",
		SessionSecret:      devSessionSecret,
		SessionIdleTimeout: 30 * time.Minute,
		RateLimitPerSecond: 20,
		RateLimitBurst:     40,
		MetricsAddress:     ":9090",
		CacheMaxEntries:    500,
	}
}

// LoadConfig reads .env (if any), then the YAML config file, then the
// CINEMATCH_* environment, and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogErr(serr.Wrap(err, "failed to load .env file"))
	}

	path := os.Getenv(ConfigPathEnvVar)
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	return LoadConfigFile(path)
}

// LoadConfigFile layers defaults, the YAML file at path (skipped when
// empty) and the environment.
func LoadConfigFile(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return nil, serr.Wrap(err, "failed to load config defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, serr.Wrap(err, "failed to load config file", "path", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, serr.Wrap(err, "failed to load environment config")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, serr.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps CINEMATCH_BACKEND_URL to backend_url.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the rules tags cannot express.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return serr.Wrap(err, "invalid configuration")
	}
	if c.RequestTimeout < 100*time.Millisecond {
		return serr.New("request_timeout must be at least 100ms")
	}
	if c.SessionIdleTimeout < time.Minute {
		return serr.New("session_idle_timeout must be at least 1m")
	}
	if c.CacheTTL < 0 {
		return serr.New("cache_ttl must not be negative")
	}
	if c.SessionSecret == devSessionSecret {
		logger.Info("Using the development session secret; set CINEMATCH_SESSION_SECRET in production")
	}
	return nil
}

// ControllerOptions derives the search controller settings.
func (c *Config) ControllerOptions() ControllerOptions {
	return ControllerOptions{
		MaxMatches:         c.MaxMatches,
		MaxRecommendations: c.MaxRecommendations,
		GenreFailureAlert:  c.GenreFailureAlert,
	}
}

// BackendOptions derives the backend client settings.
func (c *Config) BackendOptions() BackendOptions {
	return BackendOptions{
		BaseURL: c.BackendURL,
		Timeout: c.RequestTimeout,
	}
}

// NewMovieBackend builds the backend client, behind the lookup cache when
// one is configured. The returned cache is nil when caching is off.
func (c *Config) NewMovieBackend() (MovieBackend, *LookupCache) {
	client := NewBackendClient(c.BackendOptions())
	if c.CacheTTL <= 0 {
		return client, nil
	}
	cache := NewLookupCache(c.CacheTTL, c.CacheMaxEntries)
	return NewCachedBackend(client, cache), cache
}
