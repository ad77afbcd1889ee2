package document

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	reOpenMarker  = regexp.MustCompile(`^<!--\s*id:([\w.-]+?)(?:\s+([^>]*?))?\s*-->$`)
	reCloseMarker = regexp.MustCompile(`^<!--\s*/id:([\w.-]+?)\s*-->$`)
	reMarkerLike  = regexp.MustCompile(`^<!--\s*/?id:`)
	reFenceLine   = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

type eventKind int

const (
	eventFence eventKind = iota
	eventOpenMarker
	eventCloseMarker
)

// event is one structural boundary found in the token stream, addressed by
// source line index.
type event struct {
	kind  eventKind
	start int
	end   int // inclusive; equal to start for marker events

	block *CodeBlock // fence events only

	id   string
	opts map[string]string
}

// span is a claimed line range with its materialized block.
type span struct {
	start, end int // inclusive
	block      Block
}

type pendingOpen struct {
	line     int
	id       string
	opts     map[string]string
	matched  bool
	absorbed bool
}

// Parse decomposes source into an ordered block list whose rendered form
// reconstructs source exactly. Structural contradictions (malformed markers,
// a close marker without an open) fail the whole parse; an open marker with
// no close degrades to a boundless region and is reported through
// [Document.Warnings].
func Parse(source []byte) (*Document, error) {
	lines, trailing := splitSourceLines(string(source))
	doc := &Document{trailingNewline: trailing}

	if len(lines) == 0 {
		return doc, nil
	}

	events, err := collectEvents(source, lines)
	if err != nil {
		return nil, err
	}

	spans, warnings, err := sequence(events, lines)
	if err != nil {
		return nil, err
	}

	doc.Warnings = warnings
	doc.Blocks = assemble(spans, lines)

	return doc, nil
}

// collectEvents walks the Markdown token stream and records every fence and
// every comment-marker line, in source order.
func collectEvents(source []byte, lines []string) ([]*event, error) {
	offsets := lineOffsets(source)

	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source)).OwnerDocument()

	var events []*event

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.FencedCodeBlock:
			if ev := carveFence(n, source, lines, offsets); ev != nil {
				events = append(events, ev)
			}
		case *ast.HTMLBlock:
			evs, merr := markerEvents(n, source, offsets)
			if merr != nil {
				return ast.WalkStop, merr
			}

			events = append(events, evs...)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].start < events[j].start })

	return events, nil
}

// carveFence slices a fenced code block into its opening line, content lines,
// and closing line. A fence that cannot be located (bare fence with no info
// string and no content) is left to the surrounding text.
func carveFence(fcb *ast.FencedCodeBlock, source []byte, lines []string, offsets []int) *event {
	var openLine int

	switch {
	case fcb.Info != nil:
		openLine = lineIndexAt(offsets, fcb.Info.Segment.Start)
	case fcb.Lines().Len() > 0:
		openLine = lineIndexAt(offsets, fcb.Lines().At(0).Start) - 1
	default:
		return nil
	}

	contentStart := openLine + 1
	contentEnd := contentStart + fcb.Lines().Len() // exclusive

	end := contentEnd - 1
	var post []string

	if contentEnd < len(lines) && reFenceLine.MatchString(lines[contentEnd]) {
		end = contentEnd
		post = lines[contentEnd : contentEnd+1]
	}

	var info string
	if fcb.Info != nil {
		info = string(fcb.Info.Segment.Value(source))
	}

	lang, executable, opts := ParseInfoString(info)

	block := &CodeBlock{
		Pre:        lines[openLine : openLine+1],
		Content:    lines[contentStart:contentEnd],
		Post:       post,
		Lang:       lang,
		BlockID:    opts["id"],
		OutputID:   opts["output_id"],
		Options:    opts,
		Executable: executable,
	}

	return &event{kind: eventFence, start: openLine, end: end, block: block}
}

// markerEvents scans an HTML block's lines for id markers. A comment that
// looks like a marker but yields no id is a hard parse error.
func markerEvents(html *ast.HTMLBlock, source []byte, offsets []int) ([]*event, error) {
	segs := make([]text.Segment, 0, html.Lines().Len()+1)
	for i := 0; i < html.Lines().Len(); i++ {
		segs = append(segs, html.Lines().At(i))
	}

	if html.HasClosure() {
		segs = append(segs, html.ClosureLine)
	}

	var events []*event

	for _, seg := range segs {
		line := strings.TrimSpace(string(seg.Value(source)))
		lineIdx := lineIndexAt(offsets, seg.Start)

		if m := reOpenMarker.FindStringSubmatch(line); m != nil {
			_, opts := parseOptionTokens(splitInfo(m[2]))
			events = append(events, &event{
				kind:  eventOpenMarker,
				start: lineIdx,
				end:   lineIdx,
				id:    m[1],
				opts:  opts,
			})

			continue
		}

		if m := reCloseMarker.FindStringSubmatch(line); m != nil {
			events = append(events, &event{
				kind:  eventCloseMarker,
				start: lineIdx,
				end:   lineIdx,
				id:    m[1],
			})

			continue
		}

		if reMarkerLike.MatchString(line) {
			return nil, fmt.Errorf("line %d: %w: %q", lineIdx+1, ErrMalformedMarker, line)
		}
	}

	return events, nil
}

// sequence turns the ordered event list into non-overlapping claimed spans.
// Comment regions materialize when their close marker is found and claim the
// full line range between the markers; anything already sequenced inside
// that range is absorbed into the region's content.
func sequence(events []*event, lines []string) ([]*span, []Diagnostic, error) {
	var (
		spans   []*span
		order   []*pendingOpen
		pending = map[string][]*pendingOpen{}
	)

	for _, ev := range events {
		switch ev.kind {
		case eventFence:
			spans = append(spans, &span{start: ev.start, end: ev.end, block: ev.block})

		case eventOpenMarker:
			po := &pendingOpen{line: ev.start, id: ev.id, opts: ev.opts}
			pending[ev.id] = append(pending[ev.id], po)
			order = append(order, po)

		case eventCloseMarker:
			stack := pending[ev.id]
			for len(stack) > 0 && stack[len(stack)-1].absorbed {
				stack = stack[:len(stack)-1]
			}

			if len(stack) == 0 {
				return nil, nil, fmt.Errorf("line %d: %w: id:%s", ev.start+1, ErrUnmatchedClose, ev.id)
			}

			po := stack[len(stack)-1]
			po.matched = true
			pending[ev.id] = stack[:len(stack)-1]

			spans = absorb(spans, order, po.line)

			spans = append(spans, &span{
				start: po.line,
				end:   ev.start,
				block: &CommentBlock{
					Pre:      lines[po.line : po.line+1],
					Content:  lines[po.line+1 : ev.start],
					Post:     lines[ev.start : ev.start+1],
					MarkerID: po.id,
					Options:  po.opts,
					Closed:   true,
				},
			})
		}
	}

	var (
		warnings []Diagnostic
		unclosed []*pendingOpen
	)

	for _, po := range order {
		if po.matched || po.absorbed {
			continue
		}

		unclosed = append(unclosed, po)
		warnings = append(warnings, Diagnostic{
			Line:    po.line + 1,
			Message: fmt.Sprintf("unclosed marker id:%s, treating the rest of the document as its content", po.id),
		})
	}

	// the earliest unclosed open claims the remainder; later ones sit
	// inside its span
	if len(unclosed) > 0 {
		po := unclosed[0]

		spans = absorb(spans, order, po.line)
		spans = append(spans, &span{
			start: po.line,
			end:   len(lines) - 1,
			block: &CommentBlock{
				Pre:      lines[po.line : po.line+1],
				Content:  lines[po.line+1:],
				MarkerID: po.id,
				Options:  po.opts,
				Closed:   false,
			},
		})
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	return spans, warnings, nil
}

// absorb drops spans and pending opens that start at or after from, leaving
// the enclosing region to claim their lines. The absorbing region's own open
// marker sits at from, so only strictly later opens are dropped.
func absorb(spans []*span, order []*pendingOpen, from int) []*span {
	kept := spans[:0]

	for _, s := range spans {
		if s.start < from {
			kept = append(kept, s)
		}
	}

	for _, po := range order {
		if po.line > from && !po.absorbed {
			po.absorbed = true
		}
	}

	return kept
}

// assemble interleaves text glue between the claimed spans. Empty gaps emit
// no block at all, which keeps exact adjacency round-trippable.
func assemble(spans []*span, lines []string) []Block {
	var blocks []Block

	cursor := 0

	for _, s := range spans {
		if s.start > cursor {
			blocks = append(blocks, &TextBlock{Content: lines[cursor:s.start]})
		}

		blocks = append(blocks, s.block)
		cursor = s.end + 1
	}

	if cursor < len(lines) {
		blocks = append(blocks, &TextBlock{Content: lines[cursor:]})
	}

	return blocks
}

func lineOffsets(source []byte) []int {
	offsets := []int{0}

	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

func lineIndexAt(offsets []int, pos int) int {
	return sort.SearchInts(offsets, pos+1) - 1
}
