package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
)

// Default values for configuration.
const (
	DefaultFormat   = "text"
	DefaultPer      = "all"
	DefaultTimeout  = analyzer.DefaultTimeout
	DefaultUnit     = "s"
	DefaultLogLevel = "warn"
)

// Environment variable names.
const (
	EnvInput    = "DATETIMESCAN_INPUT"
	EnvFormat   = "DATETIMESCAN_FORMAT"
	EnvPer      = "DATETIMESCAN_PER"
	EnvTimeout  = "DATETIMESCAN_TIMEOUT"
	EnvUnit     = "DATETIMESCAN_UNIT"
	EnvLogLevel = "DATETIMESCAN_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:   DefaultFormat,
		Per:      DefaultPer,
		Timeout:  DefaultTimeout,
		Unit:     DefaultUnit,
		LogLevel: DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config. An unusable timeout is reported by Validate unless SetTimeout
// replaces it first.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvInput); v != "" {
		var inputs []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				inputs = append(inputs, p)
			}
		}
		c.Input = inputs
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvPer); v != "" {
		c.Per = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err != nil {
			c.timeoutErr = fmt.Errorf("%s: invalid timeout %q: %w", EnvTimeout, v, err)
		} else {
			c.SetTimeout(n)
		}
	}
	if v := os.Getenv(EnvUnit); v != "" {
		c.Unit = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
