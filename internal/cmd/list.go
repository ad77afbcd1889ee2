package cmd

import (
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdrun/internal/document"
)

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list <file>",
		Aliases: []string{"ls"},
		Short:   "List the addressable blocks of a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
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

			printBlocks(cmd, doc)

			return nil
		},
	}

	return cmd
}

func printBlocks(cmd *cobra.Command, doc *document.Document) {
	tbl := table.New("#", "KIND", "ID", "LANG", "EXEC", "OUTPUT", "LINES")
	tbl.WithWriter(cmd.OutOrStdout())

	index := 0
	line := 1

	for _, b := range doc.Blocks {
		span := fmt.Sprintf("%d-%d", line, line+len(b.Lines())-1)

		switch t := b.(type) {
		case *document.CodeBlock:
			tbl.AddRow(index, "code", t.BlockID, t.Lang, t.Executable, t.OutputID, span)
			index++
		case *document.CommentBlock:
			tbl.AddRow(index, "comment", t.MarkerID, "", false, "", span)
			index++
		}

		line += len(b.Lines())
	}

	tbl.Print()
}
