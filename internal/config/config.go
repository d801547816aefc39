// Package config provides layered configuration for chsql.
//
// Values are merged from four sources, lowest to highest precedence:
// built-in defaults, a chsql.yaml file, CHSQL_* environment variables and
// command-line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults applied when no other source provides a value.
const (
	DefaultLimit      = 1000
	DefaultTimeColumn = "timestamp"
	DefaultListen     = ":8686"
)

// Config holds all chsql configuration options.
type Config struct {
	// DefaultLimit is the row limit injected into queries that have none.
	DefaultLimit int `koanf:"default_limit"`
	// TimeColumn is the default time column for context queries.
	TimeColumn string `koanf:"time_column"`
	// Listen is the HTTP API listen address.
	Listen  string `koanf:"listen"`
	Verbose bool   `koanf:"verbose"`
}

// findConfigFile returns the config file to use.
// Priority: explicit path > chsql.yaml > chsql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"chsql.yaml", "chsql.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load merges configuration from defaults, config file, environment
// variables and flags. Precedence (highest to lowest): flags > env vars >
// config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"default_limit": DefaultLimit,
		"time_column":   DefaultTimeColumn,
		"listen":        DefaultListen,
		"verbose":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile = findConfigFile(cfgFile); cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables: CHSQL_DEFAULT_LIMIT -> default_limit
	if err := k.Load(env.Provider("CHSQL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CHSQL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (only those explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// NewLogger builds the process logger: text records to w, debug level when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
