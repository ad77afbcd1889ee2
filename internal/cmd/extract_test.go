package cmd

import (
	"io/fs"
	"testing"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdrun/internal/document"
)

const extractDoc = "# Doc\n" +
	"```bash id=setup\n" +
	"echo one\n" +
	"```\n" +
	"```python file=scripts/main.py\n" +
	"print(2)\n" +
	"```\n" +
	"```\n" +
	"no language\n" +
	"```\n"

func parseExtractDoc(t *testing.T) *document.Document {
	t.Helper()

	doc, err := document.Parse([]byte(extractDoc))
	require.NoError(t, err)

	return doc
}

func acceptAll(string, map[string]string) bool { return true }

func TestExtractBlocks(t *testing.T) {
	memfs := memoryfs.New()
	doc := parseExtractDoc(t)

	written, err := extractBlocks(memfs, doc, acceptAll)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	got, err := fs.ReadFile(memfs, "block_0.bash")
	require.NoError(t, err)
	assert.Equal(t, "echo one\n", string(got))

	got, err = fs.ReadFile(memfs, "1_main.py")
	require.NoError(t, err)
	assert.Equal(t, "print(2)\n", string(got))

	got, err = fs.ReadFile(memfs, "block_2.txt")
	require.NoError(t, err)
	assert.Equal(t, "no language\n", string(got))
}

func TestExtractBlocksLangFilter(t *testing.T) {
	memfs := memoryfs.New()
	doc := parseExtractDoc(t)

	filter, err := buildFilter("py*", nil)
	require.NoError(t, err)

	written, err := extractBlocks(memfs, doc, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	_, err = fs.ReadFile(memfs, "block_0.bash")
	assert.Error(t, err)
}

func TestExtractBlocksMetaFilter(t *testing.T) {
	memfs := memoryfs.New()
	doc := parseExtractDoc(t)

	filter, err := buildFilter("", []string{"id=setup"})
	require.NoError(t, err)

	written, err := extractBlocks(memfs, doc, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	got, err := fs.ReadFile(memfs, "block_0.bash")
	require.NoError(t, err)
	assert.Equal(t, "echo one\n", string(got))
}
