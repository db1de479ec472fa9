// Package cli provides the sqlbuild command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlbuild",
		Short: "Build SQL statements and bind placeholders",
		Long: `sqlbuild renders SQL statements described in YAML documents, substitutes
?, $N and :name: placeholders with literal values, and reports placeholders
left unbound.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := NewLogger(cfg, cmd.ErrOrStderr())
			logger.Debug("config loaded",
				"log_level", cfg.LogLevel,
				"no_terminator", cfg.NoTerminator,
				"quote_style", cfg.QuoteStyle,
			)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(WithLogger(WithConfig(ctx, cfg), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+DefaultConfigFile+")")
	rootCmd.PersistentFlags().String("log-level", DefaultLogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("no-terminator", false, "Omit the trailing semicolon")
	rootCmd.PersistentFlags().String("quote-style", "", "Quote table names (plain|backtick|bracket|double|single)")

	_ = rootCmd.RegisterFlagCompletionFunc("quote-style", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "backtick", "bracket", "double", "single"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewBindCommand())
	rootCmd.AddCommand(NewCheckCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// WithConfig returns a context carrying cfg, for GetConfig.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger returns a context carrying logger, for GetLogger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{LogLevel: DefaultLogLevel}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
