// Package config loads runtime settings from defaults, an optional YAML file,
// a .env file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"passwordAuditBackend/internal/core/domain"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Advisory AdvisoryConfig `yaml:"advisory"`
	Audit    AuditConfig    `yaml:"audit"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimitRPS    int           `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	TrustedProxies  []string      `yaml:"trusted_proxies"`
}

type AdvisoryConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type AuditConfig struct {
	Workers      int `yaml:"workers"`
	MaxBatchSize int `yaml:"max_batch_size"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitRPS:    1,
			RateLimitBurst:  3,
			TrustedProxies:  []string{"127.0.0.1"},
		},
		Advisory: AdvisoryConfig{
			Model:   "gemini-2.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 30 * time.Second,
		},
		Audit: AuditConfig{
			Workers:      4,
			MaxBatchSize: 10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file; a missing
// .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.RateLimitRPS = getEnvInt("RATE_LIMIT_RPS", c.Server.RateLimitRPS)
	c.Server.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.Server.RateLimitBurst)

	c.Advisory.APIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", c.Advisory.APIKey))
	c.Advisory.Model = getEnv("ADVISORY_MODEL", c.Advisory.Model)
	c.Advisory.BaseURL = getEnv("ADVISORY_BASE_URL", c.Advisory.BaseURL)
	c.Advisory.Timeout = getEnvDuration("ADVISORY_TIMEOUT", c.Advisory.Timeout)

	c.Audit.Workers = getEnvInt("AUDIT_WORKERS", c.Audit.Workers)
	c.Audit.MaxBatchSize = getEnvInt("MAX_BATCH_SIZE", c.Audit.MaxBatchSize)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: server port is empty", domain.ErrInvalidConfig)
	}
	if c.Audit.Workers < 1 {
		return fmt.Errorf("%w: audit workers must be positive, got %d", domain.ErrInvalidConfig, c.Audit.Workers)
	}
	if c.Audit.MaxBatchSize < 1 {
		return fmt.Errorf("%w: max batch size must be positive, got %d", domain.ErrInvalidConfig, c.Audit.MaxBatchSize)
	}
	if c.Advisory.Timeout <= 0 {
		return fmt.Errorf("%w: advisory timeout must be positive, got %s", domain.ErrInvalidConfig, c.Advisory.Timeout)
	}
	if c.Server.RateLimitRPS < 1 || c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("%w: rate limit must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// AdvisoryEnabled reports whether an API key is configured.
func (c AdvisoryConfig) AdvisoryEnabled() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Int("default", fallback).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}
