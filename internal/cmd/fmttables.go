package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdrun/internal/document"
	"github.com/ezerfernandes/mdrun/internal/tables"
)

func fmtTablesCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "fmt-tables [flags] <file>",
		Short: "Re-align Markdown tables in a document, leaving code blocks alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := document.Parse(src)
			if err != nil {
				return err
			}

			if !reformatTables(doc) {
				opts.log.Info().Str("file", args[0]).Msg("no changes")

				return nil
			}

			target := output
			if target == "" {
				target = args[0]
			}

			return os.WriteFile(target, doc.Bytes(), fileMode)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this path instead of the input file")

	return cmd
}

// reformatTables re-aligns every table found in the document's text blocks.
// Going through the block model keeps tables inside code fences and comment
// regions untouched.
func reformatTables(doc *document.Document) bool {
	changed := false

	for _, b := range doc.Blocks {
		tb, ok := b.(*document.TextBlock)
		if !ok {
			continue
		}

		lines, c := reformatTableLines(tb.Content)
		if c {
			tb.Content = lines
			changed = true
		}
	}

	return changed
}

func reformatTableLines(lines []string) ([]string, bool) {
	var out []string

	changed := false

	for i := 0; i < len(lines); {
		if !isTableLine(lines[i]) {
			out = append(out, lines[i])
			i++

			continue
		}

		j := i
		for j < len(lines) && isTableLine(lines[j]) {
			j++
		}

		run := lines[i:j]

		if hasSeparatorRow(run) {
			formatted := strings.Split(
				tables.Reformat(strings.Join(run, "\n"), tables.WithoutSeparatorSpace()),
				"\n",
			)

			if !slices.Equal(formatted, run) {
				changed = true
			}

			out = append(out, formatted...)
		} else {
			out = append(out, run...)
		}

		i = j
	}

	return out, changed
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func hasSeparatorRow(lines []string) bool {
	for _, line := range lines {
		if tables.IsSeparatorRow(line) {
			return true
		}
	}

	return false
}
