package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdrun/internal/config"
	"github.com/ezerfernandes/mdrun/internal/document"
	"github.com/ezerfernandes/mdrun/internal/exec"
)

type runSettings struct {
	output      string
	matchIndent bool
	dryRun      bool
	lang        string
	python      string
	envFile     string
}

func runCmd(opts *options) *cobra.Command {
	var rs runSettings

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "run [flags] <file>",
		Aliases: []string{"r"},
		Short:   "Execute marked code blocks and write captured output back into the document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			if rs.python == "" {
				rs.python = cfg.Python
			}

			if rs.lang == "" {
				rs.lang = cfg.Lang
			}

			if !cmd.Flags().Changed("match-indent") {
				rs.matchIndent = cfg.MatchIndent
			}

			return runFile(cmd.Context(), opts, cmd.OutOrStdout(), args[0], rs)
		},
	}

	cmd.Flags().StringVarP(&rs.output, "output", "o", "", "write the result to this path instead of the input file")
	cmd.Flags().BoolVar(&rs.matchIndent, "match-indent", false, "re-indent written output to match the target block")
	cmd.Flags().BoolVar(&rs.dryRun, "dry-run", false, "print the result to stdout, write nothing")
	cmd.Flags().StringVar(&rs.lang, "lang", "", "only run blocks whose language matches this glob")
	cmd.Flags().StringVar(&rs.python, "python", "", "python interpreter to use")
	cmd.Flags().StringVar(&rs.envFile, "env", "", "load this .env file into the execution environment")

	return cmd
}

func runFile(ctx context.Context, opts *options, stdout io.Writer, filename string, rs runSettings) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	doc, err := document.Parse(src)
	if err != nil {
		return err
	}

	for _, w := range doc.Warnings {
		opts.log.Warn().Int("line", w.Line).Msg(w.Message)
	}

	filter, err := buildFilter(rs.lang, nil)
	if err != nil {
		return err
	}

	session, err := newSession(filename, rs)
	if err != nil {
		return err
	}

	runBlocks(ctx, opts, doc, session, filter, rs.matchIndent)

	rendered := doc.Bytes()

	if rs.dryRun {
		_, werr := stdout.Write(rendered)

		return werr
	}

	if bytes.Equal(rendered, src) {
		opts.log.Info().Str("file", filename).Msg("no changes")

		return nil
	}

	target := rs.output
	if target == "" {
		target = filename
	}

	return os.WriteFile(target, rendered, fileMode)
}

// runBlocks executes every executable block in source order and applies each
// result to the in-memory block list. The text is never re-parsed during a
// run; rendering happens once, afterwards.
func runBlocks(ctx context.Context, opts *options, doc *document.Document, session *exec.Session, filter filterFunc, matchIndent bool) {
	for _, block := range doc.CodeBlocks() {
		if !block.Executable || !filter(block.Lang, block.Options) {
			continue
		}

		result := session.Execute(ctx, block.Lang, strings.Join(block.Content, "\n"))

		if block.OutputID == "" {
			opts.log.Warn().Str("lang", block.Lang).Msg("executable block has no output-id, result goes to the log only")
			opts.log.Info().Msg(result)

			continue
		}

		if err := doc.Replace(block.OutputID, result, matchIndent); err != nil {
			// one broken cross-reference never blocks the rest
			if errors.Is(err, document.ErrTargetNotFound) {
				opts.log.Warn().Str("id", block.OutputID).Msg("output target not found, skipping")

				continue
			}

			opts.log.Error().Err(err).Str("id", block.OutputID).Msg("replacement failed")
		}
	}
}

func newSession(filename string, rs runSettings) (*exec.Session, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	sessionOpts := []exec.Option{exec.WithDir(filepath.Dir(abs))}

	if rs.python != "" {
		sessionOpts = append(sessionOpts, exec.WithPython(rs.python))
	}

	if rs.envFile != "" {
		env, err := godotenv.Read(rs.envFile)
		if err != nil {
			return nil, err
		}

		pairs := make([]string, 0, len(env))
		for key, value := range env {
			pairs = append(pairs, key+"="+value)
		}

		sessionOpts = append(sessionOpts, exec.WithEnviron(pairs))
	}

	return exec.NewSession(sessionOpts...), nil
}
