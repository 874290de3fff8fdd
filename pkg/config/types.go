// Package config provides configuration loading and validation for datetimescan.
package config

import (
	"log/slog"
	"time"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
	"github.com/ccollicutt/datetimescan/pkg/output"
)

// Config is the root configuration structure loaded from YAML or TOML.
// Command-line flags override every field.
type Config struct {
	// Input lists files or glob patterns to scan. "-" is stdin; empty means stdin.
	Input []string `yaml:"input,omitempty" toml:"input,omitempty"`

	// Output is the file results are written to. Empty means stdout.
	Output string `yaml:"output,omitempty" toml:"output,omitempty"`

	// Format is the output format: text or json.
	Format string `yaml:"format" toml:"format"`

	// Merge orders timestamps from several inputs chronologically instead of
	// concatenating the inputs.
	Merge bool `yaml:"merge,omitempty" toml:"merge,omitempty"`

	Filter FilterConfig `yaml:"filter,omitempty" toml:"filter,omitempty"`

	NoFuture   bool `yaml:"no_future,omitempty" toml:"no_future,omitempty"`
	NoUnsorted bool `yaml:"no_unsorted,omitempty" toml:"no_unsorted,omitempty"`

	// Per is the grouping interval: d, m, y or all.
	Per string `yaml:"per" toml:"per"`

	// Timeout is the longest gap in seconds that still counts as continuous activity.
	Timeout uint64 `yaml:"timeout" toml:"timeout"`

	// Unit is the duration unit: s, m, h or hms.
	Unit string `yaml:"unit" toml:"unit"`

	AllowNegative bool `yaml:"allow_negative,omitempty" toml:"allow_negative,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Populated during validation.
	interval analyzer.Interval
	unit     output.Unit
	level    slog.Level

	// timeoutErr holds an unusable timeout from the environment.
	timeoutErr error
}

// FilterConfig bounds the timestamps that are kept.
type FilterConfig struct {
	// Start and End are inclusive bounds in any accepted timestamp form.
	Start string `yaml:"start,omitempty" toml:"start,omitempty"`
	End   string `yaml:"end,omitempty" toml:"end,omitempty"`

	// Invert keeps the timestamps outside the bounds instead.
	Invert bool `yaml:"invert,omitempty" toml:"invert,omitempty"`

	start *time.Time
	end   *time.Time
}

// StartTime returns the parsed start bound, or nil when unbounded.
func (f *FilterConfig) StartTime() *time.Time {
	return f.start
}

// EndTime returns the parsed end bound, or nil when unbounded.
func (f *FilterConfig) EndTime() *time.Time {
	return f.end
}

// Interval returns the validated grouping interval.
func (c *Config) Interval() analyzer.Interval {
	return c.interval
}

// DurationUnit returns the validated duration unit.
func (c *Config) DurationUnit() output.Unit {
	return c.unit
}

// SetTimeout replaces the timeout, discarding any unusable value read from
// the environment.
func (c *Config) SetTimeout(seconds uint64) {
	c.Timeout = seconds
	c.timeoutErr = nil
}

// Level returns the validated log level.
func (c *Config) Level() slog.Level {
	return c.level
}
