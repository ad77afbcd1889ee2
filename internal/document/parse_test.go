package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioDoc = "# Title\n" +
	"```bash exec id=a output-id=b\n" +
	"echo hi\n" +
	"```\n" +
	"<!-- id:b -->\n" +
	"old\n" +
	"<!-- /id:b -->\n"

func TestParseRoundTrip(t *testing.T) {
	docs := map[string]string{
		"scenario":             scenarioDoc,
		"plain text":           "just some text\n\nwith a blank line\n",
		"no trailing newline":  "# x\n```bash\nhi\n```",
		"leading blank lines":  "\n\n# Title\n\n```py\ncode\n```\n\n",
		"crlf text":            "line one\r\nline two\r\n",
		"tilde fence":          "~~~python id=p\nprint(1)\n~~~\n",
		"unclosed fence":       "```bash exec id=a\necho hi\n",
		"adjacent blocks":      "```a id=one\nx\n```\n<!-- id:two -->\ny\n<!-- /id:two -->\n```b id=three\nz\n```\n",
		"unclosed marker":      "# Some Title\n<!-- id:foo -->\nAfter text\n",
		"marker with options":  "<!-- id:r keep=true -->\nbody\n<!-- /id:r -->\n",
		"empty comment region": "<!-- id:e -->\n<!-- /id:e -->\n",
		"empty document":       "",
	}

	for name, src := range docs {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(src))
			require.NoError(t, err)
			assert.Equal(t, src, doc.Render())
		})
	}
}

func TestParseScenarioBlocks(t *testing.T) {
	doc, err := Parse([]byte(scenarioDoc))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)

	text, ok := doc.Blocks[0].(*TextBlock)
	require.True(t, ok)
	assert.Equal(t, []string{"# Title"}, text.Content)

	code, ok := doc.Blocks[1].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "bash", code.Lang)
	assert.True(t, code.Executable)
	assert.Equal(t, "a", code.BlockID)
	assert.Equal(t, "b", code.OutputID)
	assert.Equal(t, []string{"echo hi"}, code.Content)
	assert.Equal(t, []string{"```bash exec id=a output-id=b"}, code.Pre)
	assert.Equal(t, []string{"```"}, code.Post)

	comment, ok := doc.Blocks[2].(*CommentBlock)
	require.True(t, ok)
	assert.Equal(t, "b", comment.MarkerID)
	assert.True(t, comment.Closed)
	assert.Equal(t, []string{"<!-- id:b -->"}, comment.Pre)
	assert.Equal(t, []string{"old"}, comment.Content)
	assert.Equal(t, []string{"<!-- /id:b -->"}, comment.Post)
}

func TestParseCommentOptions(t *testing.T) {
	doc, err := Parse([]byte("<!-- id:r keep=true fmt-mode=raw -->\nbody\n<!-- /id:r -->\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	comment, ok := doc.Blocks[0].(*CommentBlock)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"keep": "true", "fmt_mode": "raw"}, comment.Options)
}

func TestParseUnclosedMarkerTolerance(t *testing.T) {
	src := "# Some Title\n<!-- id:foo -->\nAfter text\nmore\n"

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, 2, doc.Warnings[0].Line)

	assert.Equal(t, src, doc.Render())

	require.Len(t, doc.Blocks, 2)

	comment, ok := doc.Blocks[1].(*CommentBlock)
	require.True(t, ok)
	assert.False(t, comment.Closed)
	assert.Empty(t, comment.Post)
	assert.Equal(t, []string{"After text", "more"}, comment.Content)
}

func TestParseUnmatchedCloseMarker(t *testing.T) {
	_, err := Parse([]byte("text\n<!-- /id:foo -->\n"))
	assert.ErrorIs(t, err, ErrUnmatchedClose)
}

func TestParseMalformedMarker(t *testing.T) {
	for _, src := range []string{
		"<!-- id: -->\n",
		"<!-- /id: -->\n",
	} {
		_, err := Parse([]byte(src))
		assert.ErrorIs(t, err, ErrMalformedMarker, src)
	}
}

func TestParsePlainCommentIsText(t *testing.T) {
	src := "<!-- just a comment -->\ntext\n"

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	_, ok := doc.Blocks[0].(*TextBlock)
	assert.True(t, ok)
	assert.Equal(t, src, doc.Render())
}

func TestParseMarkerInsideFenceIsCode(t *testing.T) {
	src := "```text\n<!-- id:x -->\n```\n"

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
	require.Len(t, doc.Blocks, 1)

	code, ok := doc.Blocks[0].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, []string{"<!-- id:x -->"}, code.Content)
}

func TestParseFenceInsideCommentRegionIsAbsorbed(t *testing.T) {
	src := "<!-- id:out -->\n```text\nold result\n```\n<!-- /id:out -->\n"

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	comment, ok := doc.Blocks[0].(*CommentBlock)
	require.True(t, ok)
	assert.Equal(t, []string{"```text", "old result", "```"}, comment.Content)
	assert.Equal(t, src, doc.Render())
}

func TestParseCodeBlocksOrder(t *testing.T) {
	src := "```a id=one\n1\n```\ntext\n```b id=two\n2\n```\n"

	doc, err := Parse([]byte(src))
	require.NoError(t, err)

	blocks := doc.CodeBlocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "one", blocks[0].BlockID)
	assert.Equal(t, "two", blocks[1].BlockID)
}
