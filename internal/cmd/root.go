package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/config"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/log"
	"github.com/felixgeelhaar/rehearse/internal/metrics"
	"github.com/felixgeelhaar/rehearse/internal/ux"
	"github.com/felixgeelhaar/rehearse/internal/version"
)

// annotationConfigFlags marks commands whose local flags override the
// practice configuration.
const annotationConfigFlags = "rehearse/config-flags"

// NewRootCommand builds the rehearse command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rehearse",
		Short: "Mock interview practice in the terminal",
		Long: `rehearse runs timed mock interview sessions and scores every answer.

Questions are drawn from a catalog of technical, behavioral, HR and system
design questions. Each answer is scored on length, evidence, STAR structure
and timing, and the session ends with an overall score.

Examples:
  # Practice five intermediate questions of any type
  rehearse practice

  # Practice behavioral questions in the full-screen interface
  rehearse practice --type behavioral --tui

  # Tailor questions to a job description
  rehearse practice --job posting.txt

  # Analyse job descriptions
  rehearse parse posting.txt other.txt --format json`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default ./rehearse.yaml or $HOME/.rehearse/config.yaml)")
	pf.StringVarP(&a.flags.format, "format", "o", ux.FormatText, "output format: text, json, yaml")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.String("catalog", "", "question catalog YAML file (default built-in)")
	pf.String("rules", "", "feedback rules YAML file (default built-in)")
	pf.String("metrics-out", "", "write Prometheus metrics to this textfile after the command")

	root.AddCommand(
		newPracticeCommand(a),
		newQuestionsCommand(a),
		newParseCommand(a),
		newScoreCommand(a),
		newTipsCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
		newCompletionCommand(),
	)
	return root
}

// ExecuteContext runs the command tree with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// app carries what every command needs once flags and configuration are
// resolved.
type app struct {
	flags struct {
		configFile string
		format     string
		noColor    bool
	}

	cfg      *config.Config
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	styles   ux.Styles
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	opts := []config.Option{config.WithFlags(cmd.InheritedFlags())}
	if cmd.Annotations[annotationConfigFlags] == "true" {
		opts = append(opts, config.WithFlags(cmd.LocalFlags()))
	}
	if a.flags.configFile != "" {
		opts = append(opts, config.WithFile(a.flags.configFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return err
	}
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.ServiceVersion = version.GetInfo().Short()
	a.logger = log.New(logCfg)
	log.SetDefaultLogger(a.logger)

	if _, err := ux.NewFormatter(a.flags.format, nil); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid --format", err).
			WithSuggestion("Use --format text, --format json or --format yaml")
	}

	a.registry, a.metrics = metrics.NewRegistry()
	a.styles = ux.NewStyles(a.flags.noColor)

	a.logger.Debug("configuration loaded", "file", cfg.File, "command", cmd.Name())
	return nil
}

// run wraps a command body with command metrics and the metrics textfile
// export.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := fn(cmd, args)

		a.metrics.RecordCommand(cmd.Name(), err == nil, time.Since(start))
		if err != nil {
			a.metrics.RecordError(string(errors.CodeOf(err)), cmd.Name())
		}
		if path := a.cfg.Metrics.Textfile; path != "" {
			if werr := metrics.WriteTextfile(path, a.registry); werr != nil {
				a.logger.WithError(werr).Warn("write metrics textfile", "path", path)
				if err == nil {
					err = errors.NewFileWriteError(path, werr)
				}
			}
		}
		return err
	}
}

// print writes result to the command's stdout in the selected format.
func (a *app) print(cmd *cobra.Command, result any) error {
	f, err := ux.NewFormatter(a.flags.format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: a.flags.noColor,
	})
	if err != nil {
		return err
	}
	return f.Format(result)
}

func (a *app) textOutput() bool {
	return a.flags.format == "" || strings.EqualFold(a.flags.format, ux.FormatText)
}
