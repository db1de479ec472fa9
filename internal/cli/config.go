package cli

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
	"github.com/mitranim/sqlbuilder"
	"github.com/spf13/pflag"
)

const (
	// EnvPrefix is the prefix of environment variables read into Config.
	EnvPrefix = "SQLBUILD_"

	// DefaultConfigFile is loaded when present and no --config is given.
	DefaultConfigFile = "sqlbuild.yaml"

	DefaultLogLevel = "warn"
)

// Config holds settings shared by all commands.
type Config struct {
	LogLevel     string `koanf:"log_level"`
	NoTerminator bool   `koanf:"no_terminator"`
	// QuoteStyle applies to table names in query documents. Empty leaves
	// them as written.
	QuoteStyle string `koanf:"quote_style"`
}

// Style parses QuoteStyle. The bool is false when no style is configured.
func (c *Config) Style() (sqlbuilder.QuoteStyle, bool, error) {
	if c.QuoteStyle == "" {
		return 0, false, nil
	}
	style, err := sqlbuilder.ParseQuoteStyle(c.QuoteStyle)
	if err != nil {
		return 0, false, err
	}
	return style, true, nil
}

// LoadConfig loads configuration from defaults, a YAML file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level":     DefaultLogLevel,
		"no_terminator": false,
		"quote_style":   "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, explicit or default
	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: SQLBUILD_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
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

	if _, _, err := cfg.Style(); err != nil {
		return nil, fmt.Errorf("invalid quote_style: %w", err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
