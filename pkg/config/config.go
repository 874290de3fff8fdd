package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
	"github.com/ccollicutt/datetimescan/pkg/output"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DetectFormat picks the file syntax from the extension. Anything that is not
// .toml is read as YAML.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and validates a configuration file.
func Load(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("reading config file: no path given")
	}
	return LoadOrDefault(ctx, path)
}

// LoadOrDefault loads path, or starts from the defaults when path is empty.
// Environment overrides apply either way.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Read layers the defaults, the file at path (skipped when path is empty) and
// the environment without validating the result. Callers that apply further
// overrides call Validate once they are done.
func Read(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(data, DetectFormat(path), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

func decode(data []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Encode serializes cfg in the given syntax.
func Encode(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	}
}

// Validate checks a configuration for errors and caches parsed values.
// It is safe to call again after fields change.
func Validate(cfg *Config) error {
	if cfg.timeoutErr != nil {
		return cfg.timeoutErr
	}

	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format: invalid value %q (must be text or json)", cfg.Format)
	}

	interval, err := analyzer.ParseInterval(cfg.Per)
	if err != nil {
		return fmt.Errorf("per: %w", err)
	}
	cfg.interval = interval

	unit, err := output.ParseUnit(cfg.Unit)
	if err != nil {
		return fmt.Errorf("unit: %w", err)
	}
	cfg.unit = unit

	if err := cfg.level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log_level: invalid value %q (must be debug, info, warn or error)", cfg.LogLevel)
	}

	if err := validateFilter(&cfg.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	return nil
}

func validateFilter(f *FilterConfig) error {
	var err error
	if f.start, err = parseBound(f.Start); err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	if f.end, err = parseBound(f.End); err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}
	return nil
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parser.Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
