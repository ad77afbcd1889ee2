// Package cmd wires the mdrun command-line interface.
package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// options is the shared state handed to every subcommand constructor.
type options struct {
	quiet      bool
	configPath string
	log        zerolog.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &options{}

	root := rootCmd(opts, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)

		return 1
	}

	return 0
}

func rootCmd(opts *options, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "mdrun",
		Short: "Execute code blocks in Markdown documents and write their output back",

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRun: func(*cobra.Command, []string) {
			opts.log = newLogger(stderr, opts.quiet)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config file (default .mdrun.yaml if present)")

	cmd.AddCommand(runCmd(opts))
	cmd.AddCommand(listCmd(opts))
	cmd.AddCommand(extractCmd(opts))
	cmd.AddCommand(fmtTablesCmd(opts))

	return cmd
}

// newLogger builds the diagnostics side channel. Findings go to stderr and
// never into the document.
func newLogger(stderr io.Writer, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.ErrorLevel
	}

	writer := zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:        stderr,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
