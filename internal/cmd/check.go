package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/checkfmt/internal/checker"
	"github.com/harrison/checkfmt/internal/config"
	"github.com/harrison/checkfmt/internal/display"
	"github.com/harrison/checkfmt/internal/logger"
	"github.com/harrison/checkfmt/internal/models"
	"github.com/harrison/checkfmt/internal/pipeline"
)

// NonConformingError reports a completed run in which some files need
// formatting. It is not a failure of the checker itself: main translates the
// count into the process exit code.
type NonConformingError struct {
	Count int
}

// Error implements the error interface.
func (e *NonConformingError) Error() string {
	return fmt.Sprintf("%d file(s) need formatting", e.Count)
}

// runCheck resolves configuration, builds the pipeline, and runs the check.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	diag := logger.Logger(consoleLog)
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer fileLog.Close()
		diag = logger.Tee(consoleLog, fileLog)
		diag.LogDebug(fmt.Sprintf("run log: %s", fileLog.Path()))
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	var reporter checker.Reporter
	switch outputFormat {
	case "text":
		reporter = display.NewTextReporter(cmd.OutOrStdout(), quiet)
	case "json":
		reporter = display.NewJSONReporter(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}

	summary, err := runChecker(cmd.Context(), cfg, reporter, diag, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := reporter.Flush(); err != nil {
		return err
	}

	if summary.NeedsFormatting > 0 {
		return &NonConformingError{Count: summary.NeedsFormatting}
	}
	return nil
}

// runChecker builds the checker from the resolved config and runs it over
// the given args, or over paths read from stdin when no args are given (or
// the sole arg is "-").
func runChecker(ctx context.Context, cfg *config.Config, reporter checker.Reporter, diag logger.Logger, args []string, stdin io.Reader) (*models.RunSummary, error) {
	masker := pipeline.NewMasker(cfg.Directive)
	if cfg.MaskedDirective != "" {
		masker.Masked = cfg.MaskedDirective
	}

	chk := &checker.Checker{
		Runner: &pipeline.Runner{
			FormatterPath: cfg.Formatter,
			Style:         cfg.Style,
			Masker:        masker,
		},
		Reporter:       reporter,
		Logger:         diag,
		SkipBlankLines: cfg.SkipBlankLines,
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return chk.CheckReader(ctx, stdin)
	}
	return chk.CheckPaths(ctx, args)
}

// resolveConfig loads the config file and applies flag overrides on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("formatter") {
		if cfg.Formatter, err = cmd.Flags().GetString("formatter"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("style") {
		if cfg.Style, err = cmd.Flags().GetString("style"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		if cfg.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("log-dir") {
		if cfg.LogDir, err = cmd.Flags().GetString("log-dir"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
