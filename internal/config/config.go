package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingSecret is returned in production when no signing key is set.
var ErrMissingSecret = errors.New(envJWTSecret + " environment variable must be set in production")

// Config holds runtime configuration for the server.
type Config struct {
	Env      string         `yaml:"env"`
	Port     string         `yaml:"port"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	HTTP     HTTPConfig     `yaml:"http"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig picks the bun dialect and connection string.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

// AuthConfig controls token signing.
type AuthConfig struct {
	SecretKey string   `yaml:"secret_key"`
	TokenTTL  Duration `yaml:"token_ttl"`
	// InsecureKey is set when SecretKey fell back to DevSecretKey.
	InsecureKey bool `yaml:"-"`
}

// HTTPConfig covers CORS and the auth route limiter.
type HTTPConfig struct {
	AllowedOrigins    []string `yaml:"allowed_origins"`
	AuthRatePerMinute int      `yaml:"auth_rate_per_minute"`
	AuthBurst         int      `yaml:"auth_burst"`
}

// DraftsConfig selects where in-progress round sessions live.
type DraftsConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// Production reports whether production guards apply.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env:  defaultEnv,
		Port: defaultPort,
		Log:  LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Database: DatabaseConfig{
			Driver: defaultDatabaseDriver,
			URL:    defaultDatabaseURL,
		},
		Auth: AuthConfig{TokenTTL: defaultTokenTTL},
		HTTP: HTTPConfig{
			AuthRatePerMinute: defaultAuthRate,
			AuthBurst:         defaultAuthBurst,
		},
		Drafts:  DraftsConfig{Backend: defaultDraftsBackend, Dir: defaultDraftsDir},
		Metrics: defaultMetrics(),
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(envConfigFile); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg = applyEnv(cfg)
	return finalize(cfg)
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg Config) Config {
	cfg.Env = envOrDefault(envEnv, cfg.Env)
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	cfg.Database.Driver = envOrDefault(envDatabaseDriver, cfg.Database.Driver)
	cfg.Database.URL = envOrDefault(envDatabaseURL, cfg.Database.URL)
	cfg.Auth.SecretKey = envOrDefault(envJWTSecret, cfg.Auth.SecretKey)
	cfg.Auth.TokenTTL = durationEnvOrDefault(envTokenTTL, cfg.Auth.TokenTTL)
	cfg.HTTP.AllowedOrigins = listEnvOrDefault(envCORSOrigins, cfg.HTTP.AllowedOrigins)
	cfg.HTTP.AuthRatePerMinute = intEnvOrDefault(envAuthRate, cfg.HTTP.AuthRatePerMinute)
	cfg.HTTP.AuthBurst = intEnvOrDefault(envAuthBurst, cfg.HTTP.AuthBurst)
	cfg.Drafts.Backend = envOrDefault(envDraftsBackend, cfg.Drafts.Backend)
	cfg.Drafts.Dir = envOrDefault(envDraftsDir, cfg.Drafts.Dir)
	cfg.Metrics = cfg.Metrics.withEnv()
	return cfg
}

func finalize(cfg Config) (Config, error) {
	if cfg.Auth.SecretKey == "" {
		if cfg.Production() {
			return Config{}, ErrMissingSecret
		}
		cfg.Auth.SecretKey = DevSecretKey
		cfg.Auth.InsecureKey = true
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		if cfg.Production() {
			cfg.HTTP.AllowedOrigins = []string{defaultProdOrigin}
		} else {
			cfg.HTTP.AllowedOrigins = []string{"*"}
		}
	}
	switch strings.ToLower(cfg.Drafts.Backend) {
	case DraftsMemory, DraftsFS:
		cfg.Drafts.Backend = strings.ToLower(cfg.Drafts.Backend)
	default:
		return Config{}, fmt.Errorf("unknown drafts backend %q", cfg.Drafts.Backend)
	}
	return cfg, nil
}
