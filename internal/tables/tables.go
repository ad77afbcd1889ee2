// Package tables parses, aligns, and renders Markdown tables. It is a
// self-contained text utility with no dependency on the document block model.
package tables

import (
	"regexp"
	"strings"
)

// Align is a column alignment mode.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

type options struct {
	separatorSpace bool
	maxWidth       int
	defaultAlign   Align
	alignments     []Align
	autoNumeric    bool
}

// Option configures table formatting.
type Option func(*options)

// WithoutSeparatorSpace disables the extra padding space around cells.
func WithoutSeparatorSpace() Option {
	return func(o *options) { o.separatorSpace = false }
}

// WithMaxWidth caps the padded width of any column. Longer cells are left
// unpadded.
func WithMaxWidth(w int) Option {
	return func(o *options) { o.maxWidth = w }
}

// WithAlignment sets the default alignment for text columns.
func WithAlignment(a Align) Option {
	return func(o *options) { o.defaultAlign = a }
}

// WithAlignments sets per-column alignments, overriding numeric
// auto-detection. Columns beyond the slice fall back to the default marker.
func WithAlignments(aligns ...Align) Option {
	return func(o *options) { o.alignments = aligns }
}

// WithoutNumericAlign disables right-aligning of numeric columns.
func WithoutNumericAlign() Option {
	return func(o *options) { o.autoNumeric = false }
}

func buildOptions(opts []Option) *options {
	o := &options{
		separatorSpace: true,
		defaultAlign:   AlignLeft,
		autoNumeric:    true,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

var (
	reSeparatorRow = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)+\|?\s*$`)
	reCellSplit    = regexp.MustCompile(`\s*\|\s*`)
	reNumeric      = regexp.MustCompile(`^[-+]?\d*\.?\d+$`)
)

// IsSeparatorRow reports whether line is a Markdown table separator row,
// e.g. "| --- | :---: |".
func IsSeparatorRow(line string) bool {
	return reSeparatorRow.MatchString(line)
}

// Parse reads a Markdown table into rows of trimmed cells. Separator rows
// and blank lines are skipped.
func Parse(md string) [][]string {
	var rows [][]string

	for _, line := range strings.Split(strings.TrimSpace(md), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || reSeparatorRow.MatchString(line) {
			continue
		}

		cells := reCellSplit.Split(strings.Trim(line, "| "), -1)
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}

		rows = append(rows, cells)
	}

	return rows
}

// ReadDicts reads a Markdown table the way csv.DictReader would: the first
// row is the header, every data row becomes a map. Missing cells are empty
// strings.
func ReadDicts(md string) []map[string]string {
	rows := Parse(md)
	if len(rows) < 2 {
		return nil
	}

	header := rows[0]

	dicts := make([]map[string]string, 0, len(rows)-1)

	for _, row := range rows[1:] {
		d := make(map[string]string, len(header))

		for i, field := range header {
			if i < len(row) {
				d[field] = row[i]
			} else {
				d[field] = ""
			}
		}

		dicts = append(dicts, d)
	}

	return dicts
}

// PadColumns pads every cell so columns line up, right-aligning numeric
// columns unless disabled. The first row is treated as the header and
// excluded from numeric detection.
func PadColumns(rows [][]string, opts ...Option) [][]string {
	return padColumns(rows, buildOptions(opts))
}

func padColumns(rows [][]string, o *options) [][]string {
	if len(rows) == 0 {
		return nil
	}

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	numeric := numericColumns(rows, numCols)
	widths := columnWidths(rows, numCols, o.maxWidth)

	padded := make([][]string, len(rows))

	for r, row := range rows {
		cells := make([]string, len(row))

		for i, cell := range row {
			align := o.defaultAlign
			if o.autoNumeric && numeric[i] {
				align = AlignRight
			}

			cells[i] = pad(cell, widths[i], align)

			if o.separatorSpace {
				if i != 0 {
					cells[i] = " " + cells[i]
				}

				if i != len(row)-1 {
					cells[i] += " "
				}
			}
		}

		padded[r] = cells
	}

	return padded
}

// Format renders rows as a Markdown table with a marker separator row
// (:---, ---:, :---:). Numeric columns are right-aligned unless per-column
// alignments are given.
func Format(rows [][]string, opts ...Option) string {
	o := buildOptions(opts)

	if len(rows) == 0 {
		return ""
	}

	padded := padColumns(rows, o)

	alignments := o.alignments
	if alignments == nil && o.autoNumeric {
		alignments = inferAlignments(rows)
	}

	separators := make([]string, len(padded[0]))
	for i := range separators {
		a := AlignDefault
		if i < len(alignments) {
			a = alignments[i]
		}

		separators[i] = alignmentMarker(a)
	}

	lines := []string{
		"| " + strings.Join(padded[0], " | ") + " |",
		"| " + strings.Join(separators, " | ") + " |",
	}

	for _, row := range padded[1:] {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}

	return strings.Join(lines, "\n")
}

// FromDicts renders a list of maps as a Markdown table. With nil fields the
// columns cannot be ordered reliably, so fields should name the header order.
func FromDicts(dicts []map[string]string, fields []string, opts ...Option) string {
	if len(dicts) == 0 {
		return ""
	}

	rows := [][]string{fields}

	for _, d := range dicts {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = d[f]
		}

		rows = append(rows, row)
	}

	return Format(rows, opts...)
}

// Reformat parses a Markdown table and renders it back aligned.
func Reformat(md string, opts ...Option) string {
	return Format(Parse(md), opts...)
}

func isNumeric(s string) bool {
	return reNumeric.MatchString(strings.TrimSpace(s))
}

// numericColumns reports, per column, whether every non-empty data cell is
// numeric. Columns with no data cells count as numeric, which only affects
// padding.
func numericColumns(rows [][]string, numCols int) []bool {
	numeric := make([]bool, numCols)

	for col := range numeric {
		numeric[col] = true

		for _, row := range rows[1:] {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}

			if !isNumeric(row[col]) {
				numeric[col] = false

				break
			}
		}
	}

	return numeric
}

// inferAlignments right-aligns columns whose data cells are all numeric and
// non-empty, left-aligns everything else.
func inferAlignments(rows [][]string) []Align {
	if len(rows) == 0 {
		return nil
	}

	if len(rows) < 2 {
		alignments := make([]Align, len(rows[0]))
		for i := range alignments {
			alignments[i] = AlignLeft
		}

		return alignments
	}

	alignments := make([]Align, len(rows[0]))

	for col := range alignments {
		alignments[col] = AlignLeft

		seen := false
		allNumeric := true

		for _, row := range rows[1:] {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}

			seen = true

			if !isNumeric(row[col]) {
				allNumeric = false

				break
			}
		}

		if seen && allNumeric {
			alignments[col] = AlignRight
		}
	}

	return alignments
}

func columnWidths(rows [][]string, numCols, maxWidth int) []int {
	widths := make([]int, numCols)

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if maxWidth > 0 {
		for i := range widths {
			if widths[i] > maxWidth {
				widths[i] = maxWidth
			}
		}
	}

	return widths
}

func pad(cell string, width int, align Align) string {
	gap := width - len(cell)
	if gap <= 0 {
		return cell
	}

	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2

		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

func alignmentMarker(a Align) string {
	switch a {
	case AlignLeft:
		return ":---"
	case AlignRight:
		return "---:"
	case AlignCenter:
		return ":---:"
	default:
		return "---"
	}
}
