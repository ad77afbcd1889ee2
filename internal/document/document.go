package document

import "strings"

// Diagnostic is a non-fatal structural finding reported by the parser or the
// replacer. Diagnostics never mutate the document.
type Diagnostic struct {
	Line    int // 1-based source line
	Message string
}

// Document is the ordered block decomposition of one Markdown source.
// A Document never outlives one parse pass: it is built fresh by [Parse],
// optionally mutated through [Document.Replace], rendered, and discarded.
type Document struct {
	Blocks   []Block
	Warnings []Diagnostic

	trailingNewline bool
}

// Render reassembles the document from its blocks. For an unmodified
// document it is the exact inverse of [Parse], byte for byte.
func (d *Document) Render() string {
	var lines []string
	for _, b := range d.Blocks {
		lines = append(lines, b.Lines()...)
	}

	if len(lines) == 0 {
		return ""
	}

	text := strings.Join(lines, "\n")
	if d.trailingNewline {
		text += "\n"
	}

	return text
}

// Bytes renders the document as a byte slice.
func (d *Document) Bytes() []byte { return []byte(d.Render()) }

// CodeBlocks returns the document's fenced code blocks in source order.
func (d *Document) CodeBlocks() []*CodeBlock {
	var blocks []*CodeBlock

	for _, b := range d.Blocks {
		if cb, ok := b.(*CodeBlock); ok {
			blocks = append(blocks, cb)
		}
	}

	return blocks
}

// splitSourceLines splits text into lines without terminators and reports
// whether the text ended with a newline. Carriage returns stay attached to
// their line so CRLF sources survive the round trip.
func splitSourceLines(text string) ([]string, bool) {
	if text == "" {
		return nil, false
	}

	trailing := strings.HasSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	if trailing {
		lines = lines[:len(lines)-1]
	}

	return lines, trailing
}
