package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdrun/internal/document"
)

func TestReformatTableLines(t *testing.T) {
	lines := []string{
		"intro",
		"| name | age |",
		"|--|--|",
		"| alice | 5 |",
		"outro",
	}

	got, changed := reformatTableLines(lines)
	assert.True(t, changed)
	assert.Equal(t, []string{
		"intro",
		"| name  | age |",
		"| :--- | ---: |",
		"| alice |   5 |",
		"outro",
	}, got)
}

func TestReformatTableLinesNoTable(t *testing.T) {
	lines := []string{"plain", "text"}

	got, changed := reformatTableLines(lines)
	assert.False(t, changed)
	assert.Equal(t, lines, got)
}

func TestReformatTableLinesSkipsRunsWithoutSeparator(t *testing.T) {
	lines := []string{"| not | a table line run |"}

	got, changed := reformatTableLines(lines)
	assert.False(t, changed)
	assert.Equal(t, lines, got)
}

func TestReformatTablesLeavesCodeBlocksAlone(t *testing.T) {
	src := "| a | b |\n|--|--|\n| 1 | 2 |\n" +
		"```text\n| raw | table |\n|--|--|\n```\n"

	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)

	changed := reformatTables(doc)
	assert.True(t, changed)

	rendered := doc.Render()
	assert.Contains(t, rendered, "```text\n| raw | table |\n|--|--|\n```")
}
