package desktop

import (
	"time"

	"passwordAuditBackend/internal/config"
)

type Config struct {
	MaxThreads      int
	MaxBatchSize    int
	AdvisoryTimeout time.Duration
}

func NewDefaultConfig() *Config {
	defaults := config.DefaultConfig()
	return &Config{
		MaxThreads:      defaults.Audit.Workers,
		MaxBatchSize:    defaults.Audit.MaxBatchSize,
		AdvisoryTimeout: defaults.Advisory.Timeout,
	}
}

// AuditConfig maps the desktop settings onto the service configuration.
func (c *Config) AuditConfig() config.AuditConfig {
	return config.AuditConfig{
		Workers:      c.MaxThreads,
		MaxBatchSize: c.MaxBatchSize,
	}
}
