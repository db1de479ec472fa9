package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitranim/sqlbuilder"
	"github.com/spf13/cobra"
)

// ErrUnbound is returned by the check command when placeholders remain.
var ErrUnbound = errors.New("unbound placeholders")

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render SQL from YAML query documents",
		Long: `Render SQL statements from YAML query documents. A file may hold several
documents separated by "---". Use "-" to read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			for _, path := range args {
				src, err := readFile(cmd, path)
				if err != nil {
					return err
				}

				docs, err := DecodeDocuments(bytes.NewReader(src))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				logger.Debug("decoded documents", "path", path, "count", len(docs))

				for i := range docs {
					text, err := docs[i].Render(cfg)
					if err != nil {
						return fmt.Errorf("%s: document %d: %w", path, i+1, err)
					}
					logger.Info("rendered statement", "path", path, "document", i+1, "kind", docs[i].Kind)
					fmt.Fprintln(cmd.OutOrStdout(), text)
				}
			}
			return nil
		},
	}
	return cmd
}

// NewBindCommand creates the bind command.
func NewBindCommand() *cobra.Command {
	var args, nums, names []string

	cmd := &cobra.Command{
		Use:   "bind SQL",
		Short: "Substitute placeholders with literal values",
		Long: `Substitute placeholders in SQL text with literal values.

--arg values replace ? placeholders in order, cycling when there are more
placeholders than values. --num values replace $1, $2 and so on. --name
key=value pairs replace :key: placeholders. Values are typed: null, true,
false, integers and floats are rendered as such, anything else as a quoted
string. Use "-" to read SQL from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			logger := GetLogger(cmd.Context())

			src, err := readSQL(cmd, cmdArgs[0])
			if err != nil {
				return err
			}

			named := make(map[string]any, len(names))
			for _, pair := range names {
				key, val, ok := strings.Cut(pair, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid --name %q, expected key=value", pair)
				}
				named[key] = ParseValue(val)
			}

			text := applyBindings(src, parseValues(args), parseValues(nums), named)
			logger.Debug("bound placeholders", "args", len(args), "nums", len(nums), "names", len(named))

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&args, "arg", nil, "Value for the next ? placeholder (repeatable)")
	cmd.Flags().StringArrayVar(&nums, "num", nil, "Value for $1, $2, ... in order (repeatable)")
	cmd.Flags().StringArrayVar(&names, "name", nil, "key=value for :key: placeholders (repeatable)")
	return cmd
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check SQL",
		Short: "Report placeholders left in SQL text",
		Long: `Print placeholders (?, $N, :name) found outside quoted strings and comments,
one per line. Exits with an error when any are found. Use "-" to read from
stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSQL(cmd, args[0])
			if err != nil {
				return err
			}

			markers, err := sqlbuilder.Unbound(src)
			if err != nil {
				return fmt.Errorf("failed to scan SQL: %w", err)
			}
			for _, m := range markers {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			if len(markers) > 0 {
				return fmt.Errorf("%w: %d found", ErrUnbound, len(markers))
			}
			return nil
		},
	}
	return cmd
}

// ParseValue types a command-line value: null, booleans, integers and floats
// are recognized, anything else stays a string.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if !strings.ContainsAny(s, "0123456789") {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parseValues(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = ParseValue(v)
	}
	return out
}

// readFile reads the named file, or the command's stdin for "-".
func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return readStdin(cmd)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return src, nil
}

// readSQL returns the argument itself, or the command's stdin for "-".
func readSQL(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	src, err := readStdin(cmd)
	return strings.TrimRight(string(src), "\r\n"), err
}

func readStdin(cmd *cobra.Command) ([]byte, error) {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return src, nil
}
