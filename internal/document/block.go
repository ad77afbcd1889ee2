// Package document models a Markdown file as an ordered sequence of typed,
// addressable blocks that can be re-rendered losslessly and mutated one at
// a time.
package document

// Block is one contiguous span of source lines. The concatenation of every
// block's lines, in order, reconstructs the document exactly.
type Block interface {
	// ID returns the block's address within the document, or "" when the
	// block is not addressable.
	ID() string

	// Lines returns the block's full line span: opening line(s), content,
	// closing line(s).
	Lines() []string
}

// TextBlock is free-form Markdown outside any recognized region.
type TextBlock struct {
	Content []string
}

func (b *TextBlock) ID() string { return "" }

func (b *TextBlock) Lines() []string { return b.Content }

// CodeBlock is a fenced code region.
type CodeBlock struct {
	Pre     []string // opening fence line, including the info string
	Content []string
	Post    []string // closing fence line; empty when the fence is unclosed at EOF

	Lang       string
	BlockID    string
	OutputID   string
	Options    map[string]string
	Executable bool
}

func (b *CodeBlock) ID() string { return b.BlockID }

func (b *CodeBlock) Lines() []string { return joinSpan(b.Pre, b.Content, b.Post) }

// CommentBlock is a region delimited by a pair of HTML comment markers
// sharing an id. When the close marker was missing at parse time, Closed is
// false and Post is empty: the region is open but boundless.
type CommentBlock struct {
	Pre     []string
	Content []string
	Post    []string

	MarkerID string
	Options  map[string]string
	Closed   bool
}

func (b *CommentBlock) ID() string { return b.MarkerID }

func (b *CommentBlock) Lines() []string { return joinSpan(b.Pre, b.Content, b.Post) }

func joinSpan(pre, content, post []string) []string {
	lines := make([]string, 0, len(pre)+len(content)+len(post))
	lines = append(lines, pre...)
	lines = append(lines, content...)
	lines = append(lines, post...)

	return lines
}
