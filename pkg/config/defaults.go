package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ccollicutt/kernlog/pkg/tail"
)

// Default values for configuration.
const (
	DefaultPollInterval         = tail.SuggestedPollInterval
	DefaultOutput               = "text"
	DefaultWebhookBatchSize     = 100
	DefaultWebhookFlushInterval = 5 * time.Second
	DefaultWebhookTimeout       = 10 * time.Second
)

// Environment variable names.
const (
	EnvPollInterval = "KERNLOG_POLL_INTERVAL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PollInterval: DefaultPollInterval,
		Output:       DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if v := os.Getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPollInterval, v, err)
		}
		c.PollInterval = d
	}
	return nil
}
