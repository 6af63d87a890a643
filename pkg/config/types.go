// Package config provides configuration loading and validation for KernLog.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// PollInterval is the minimum spacing between kernel reads.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Clear empties the ring buffer as part of each read.
	Clear bool `yaml:"clear"`

	// Output selects the line format (text, json).
	Output string `yaml:"output"`

	// Filters restrict which lines are delivered.
	Filters FilterConfig `yaml:"filters,omitempty"`

	// Webhooks receive batches of delivered lines.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// FilterConfig holds include/exclude regular expressions applied to each
// delivered line.
type FilterConfig struct {
	// Include patterns: when any are set, a line must match at least one.
	Include []string `yaml:"include,omitempty"`

	// Exclude patterns: a line matching any of these is dropped.
	Exclude []string `yaml:"exclude,omitempty"`

	// Compiled patterns (populated during validation).
	compiledInclude []*regexp.Regexp
	compiledExclude []*regexp.Regexp
}

// CompiledInclude returns the pre-compiled include patterns.
func (f *FilterConfig) CompiledInclude() []*regexp.Regexp {
	return f.compiledInclude
}

// CompiledExclude returns the pre-compiled exclude patterns.
func (f *FilterConfig) CompiledExclude() []*regexp.Regexp {
	return f.compiledExclude
}

// WebhookConfig defines a webhook endpoint for shipping log lines.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// BatchSize is the number of buffered lines that triggers a flush.
	// Defaults to 100 if not specified.
	BatchSize int `yaml:"batch_size,omitempty"`

	// FlushInterval flushes a partial batch after this much time.
	// Defaults to 5s if not specified.
	FlushInterval time.Duration `yaml:"flush_interval,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
