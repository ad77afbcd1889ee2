package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdrun/internal/document"
)

// writeFS is the writable filesystem extract targets. The OS implementation
// writes under a root directory; tests exercise an in-memory one.
type writeFS interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

func extractCmd(opts *options) *cobra.Command {
	var (
		dir   string
		lang  string
		metas []string
	)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "extract [flags] <file>",
		Aliases: []string{"x"},
		Short:   "Write code block contents out to files",
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

			filter, err := buildFilter(lang, metas)
			if err != nil {
				return err
			}

			written, err := extractBlocks(osDirFS{root: dir}, doc, filter)
			if err != nil {
				return err
			}

			opts.log.Info().Int("blocks", written).Str("dir", dir).Msg("extracted")

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to extract into")
	cmd.Flags().StringVar(&lang, "lang", "", "only extract blocks whose language matches this glob")
	cmd.Flags().StringArrayVarP(&metas, "meta", "m", nil, "only extract blocks with this key=value option, repeatable")

	return cmd
}

// extractBlocks writes every matching code block to fsys and returns how
// many files it wrote. Blocks with a file option keep their name, prefixed
// with the block index; the rest get block_<index> with an extension derived
// from the language.
func extractBlocks(fsys writeFS, doc *document.Document, filter filterFunc) (int, error) {
	written := 0

	for index, block := range doc.CodeBlocks() {
		if !filter(block.Lang, block.Options) {
			continue
		}

		name := blockFilename(block, index)

		if parent := path.Dir(name); parent != "." {
			if err := fsys.MkdirAll(parent, dirMode); err != nil {
				return written, err
			}
		}

		content := strings.Join(block.Content, "\n")
		if content != "" {
			content += "\n"
		}

		if err := fsys.WriteFile(name, []byte(content), fileMode); err != nil {
			return written, err
		}

		written++
	}

	return written, nil
}

func blockFilename(block *document.CodeBlock, index int) string {
	if file := block.Options["file"]; file != "" {
		return fmt.Sprintf("%d_%s", index, path.Base(file))
	}

	return fmt.Sprintf("block_%d%s", index, langExtension(block.Lang))
}

func langExtension(lang string) string {
	if lang != "" {
		return "." + strings.ToLower(lang)
	}

	return ".txt"
}

// osDirFS writes through to the real filesystem under root.
type osDirFS struct {
	root string
}

func (f osDirFS) MkdirAll(p string, perm fs.FileMode) error {
	return os.MkdirAll(filepath.Join(f.root, filepath.FromSlash(p)), perm)
}

func (f osDirFS) WriteFile(p string, data []byte, perm fs.FileMode) error {
	full := filepath.Join(f.root, filepath.FromSlash(p))

	if err := os.MkdirAll(filepath.Dir(full), dirMode); err != nil {
		return err
	}

	return os.WriteFile(full, data, perm)
}
