package document

import (
	"fmt"
	"strings"
)

// Replace substitutes the content of the block addressed by id and returns
// the re-rendered document. It is a convenience wrapper over parse, mutate,
// render for callers holding raw text.
func Replace(source []byte, id, content string, matchIndent bool) ([]byte, error) {
	doc, err := Parse(source)
	if err != nil {
		return nil, err
	}

	if err := doc.Replace(id, content, matchIndent); err != nil {
		return nil, err
	}

	return doc.Bytes(), nil
}

// Replace substitutes the content of the first block in source order whose
// id equals id. Executable code blocks are source blocks, never sinks, and
// are skipped. A boundless comment region gets a close marker synthesized
// right after its open marker first; its previous content moves below the
// new close marker.
//
// With matchIndent, the leading whitespace of the target's first non-blank
// content line is reapplied to every non-blank line of content. Blank lines
// are never indented. Content whose first non-blank line already carries
// exactly that indentation is left untouched, so re-applying a block's own
// content is a no-op.
//
// Ids are expected to be unique; when they are not, the first match wins.
func (d *Document) Replace(id, content string, matchIndent bool) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrTargetNotFound)
	}

	for _, b := range d.Blocks {
		switch t := b.(type) {
		case *CodeBlock:
			if t.Executable || t.BlockID != id {
				continue
			}

			t.Content = prepareContent(content, t.Content, matchIndent)

			return nil

		case *CommentBlock:
			if t.MarkerID != id {
				continue
			}

			original := t.Content

			if !t.Closed {
				post := make([]string, 0, len(t.Content)+1)
				post = append(post, closeMarker(t.MarkerID))
				post = append(post, t.Content...)

				t.Post = post
				t.Content = nil
				t.Closed = true
			}

			t.Content = prepareContent(content, original, matchIndent)

			return nil
		}
	}

	return fmt.Errorf("%w: id=%q", ErrTargetNotFound, id)
}

func closeMarker(id string) string {
	return fmt.Sprintf("<!-- /id:%s -->", id)
}

func prepareContent(content string, original []string, matchIndent bool) []string {
	lines := splitContentLines(content)
	if matchIndent {
		lines = indentLines(lines, detectIndent(original))
	}

	return lines
}

// splitContentLines splits replacement text into lines, dropping a single
// trailing newline so captured output does not grow the region by one blank
// line on every run.
func splitContentLines(content string) []string {
	if content == "" {
		return nil
	}

	content = strings.TrimSuffix(content, "\n")

	return strings.Split(content, "\n")
}

// detectIndent returns the leading whitespace run of the first non-blank
// line.
func detectIndent(lines []string) string {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}

	return ""
}

func indentLines(lines []string, indent string) []string {
	if indent == "" || len(lines) == 0 {
		return lines
	}

	if detectIndent(lines) == indent {
		return lines
	}

	out := make([]string, len(lines))

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""

			continue
		}

		out[i] = indent + line
	}

	return out
}
