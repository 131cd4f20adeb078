package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/rehearse/internal/config"
	"github.com/felixgeelhaar/rehearse/internal/errors"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or create rehearse configuration",
		Long: `Inspect the effective configuration or write a starter config file.

Configuration is layered: built-in defaults, then the config file
(--config, ./rehearse.yaml or ~/.rehearse/config.yaml), then REHEARSE_*
environment variables such as REHEARSE_PRACTICE_COUNT, then flags.

Examples:
  # Show the effective configuration
  rehearse config view

  # Get a specific value
  rehearse config get practice.count

  # Show which config file is used
  rehearse config path

  # Write a config file with the defaults
  rehearse config init
`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Display the effective configuration",
			Args:  cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command, _ []string) error {
				if a.textOutput() {
					return writeYAML(cmd, a.cfg)
				}
				return a.print(cmd, a.cfg)
			}),
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Long:  `Print one configuration value using dot notation (e.g. practice.difficulty).`,
			Args:  cobra.ExactArgs(1),
			RunE: a.run(func(cmd *cobra.Command, args []string) error {
				value, err := lookupKey(a.cfg, args[0])
				if err != nil {
					return err
				}
				return a.print(cmd, value)
			}),
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file in use",
			Args:  cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command, _ []string) error {
				if a.cfg.File != "" {
					return a.print(cmd, a.cfg.File)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "No config file found; searched:")
				return a.print(cmd, config.DefaultSearchPaths())
			}),
		},
		newConfigInitCommand(a),
	)
	return cmd
}

func newConfigInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a config file with the default settings",
		Long:  `Write the built-in defaults to PATH (default ./rehearse.yaml) as a starting point.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			path := "rehearse.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeFileWriteFailed, "config file already exists: "+path).
					WithSuggestion("Use --force to overwrite it")
			}

			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return err
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return errors.NewFileWriteError(path, err)
				}
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.NewFileWriteError(path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// lookupKey resolves a dotted key against the YAML form of cfg.
func lookupKey(cfg *config.Config, key string) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return "", err
	}

	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", unknownKey(key)
		}
		if node, ok = m[part]; !ok {
			return "", unknownKey(key)
		}
	}
	if _, ok := node.(map[string]any); ok {
		out, err := yaml.Marshal(node)
		return strings.TrimRight(string(out), "\n"), err
	}
	return fmt.Sprint(node), nil
}

func unknownKey(key string) error {
	return errors.New(errors.ErrCodeConfigInvalid, "unknown configuration key: "+key).
		WithSuggestion("Run 'rehearse config view' to see every key")
}
