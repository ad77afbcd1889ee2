package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInfoString(t *testing.T) {
	tests := []struct {
		name       string
		info       string
		lang       string
		executable bool
		opts       map[string]string
	}{
		{
			name: "empty",
			info: "",
			lang: "",
			opts: map[string]string{},
		},
		{
			name: "language only",
			info: "python",
			lang: "python",
			opts: map[string]string{},
		},
		{
			name:       "exec with options",
			info:       "python exec id=x a=1",
			lang:       "python",
			executable: true,
			opts:       map[string]string{"id": "x", "a": "1"},
		},
		{
			name: "quoted values",
			info: `bash output-id='bar' path="/tmp/test.sh"`,
			lang: "bash",
			opts: map[string]string{"output_id": "bar", "path": "/tmp/test.sh"},
		},
		{
			name:       "bare flag",
			info:       "bash exec verbose",
			lang:       "bash",
			executable: true,
			opts:       map[string]string{"verbose": ""},
		},
		{
			name: "hyphen keys normalized",
			info: "sh output-id=b some-key=v",
			lang: "sh",
			opts: map[string]string{"output_id": "b", "some_key": "v"},
		},
		{
			name: "duplicate keys last write wins",
			info: "bash a=1 a=2",
			lang: "bash",
			opts: map[string]string{"a": "2"},
		},
		{
			name: "unmatched quote falls back to whitespace split",
			info: "python name='unclosed",
			lang: "python",
			opts: map[string]string{"name": "unclosed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, executable, opts := ParseInfoString(tt.info)

			assert.Equal(t, tt.lang, lang)
			assert.Equal(t, tt.executable, executable)
			assert.Equal(t, tt.opts, opts)
		})
	}
}
