// Package cmd wires the checkfmt command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/checkfmt/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for checkfmt
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkfmt [flags] [file ...]",
		Short: "Check that source files conform to clang-format output",
		Long: `Checkfmt verifies that source files are formatted exactly as the
external formatter (clang-format by default) would format them, while
shielding OpenMP pragma lines that the formatter would otherwise reflow.

Files are read one path per line from standard input, or from the command
line arguments when given. For each file it prints "<path>: OK" or
"<path>: needs formatting", and the process exits with the count of files
that need formatting (0 means all files conform).

Example:
  git ls-files '*.cpp' '*.hpp' | checkfmt`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
		// Silence usage on errors to avoid duplicate help text; errors are
		// printed by main, which also owns the exit-code contract.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().String("config", config.DefaultConfigFile, "config file path")
	cmd.Flags().String("formatter", "", "formatter binary (overrides config)")
	cmd.Flags().String("style", "", "formatter style argument (overrides config)")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("quiet", false, "suppress OK lines in text output")
	cmd.Flags().String("log-level", "", "diagnostic verbosity (trace, debug, info, warn, error)")
	cmd.Flags().String("log-dir", "", "write a per-run log file into this directory")

	return cmd
}
