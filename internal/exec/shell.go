package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// shellBackend runs bash/sh blocks through an in-process POSIX shell
// interpreter. The runner is created on first use and reused, so shell
// variables and functions defined by one block are visible to the next.
type shellBackend struct {
	dir    string
	env    []string
	runner *interp.Runner
}

func (b *shellBackend) run(ctx context.Context, code string) string {
	file, err := syntax.NewParser().Parse(strings.NewReader(code), "")
	if err != nil {
		return fmt.Sprintf("[mdrun] shell parse error: %v", err)
	}

	var buf bytes.Buffer

	if err := b.prepare(&buf); err != nil {
		return fmt.Sprintf("[mdrun] shell init error: %v", err)
	}

	if err := b.runner.Run(ctx, file); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			fmt.Fprintf(&buf, "[mdrun] exit status %d\n", status)
		} else {
			fmt.Fprintf(&buf, "[mdrun] shell error: %v\n", err)
		}
	}

	return buf.String()
}

func (b *shellBackend) prepare(buf *bytes.Buffer) error {
	if b.runner == nil {
		opts := []interp.RunnerOption{
			interp.Env(expand.ListEnviron(append(os.Environ(), b.env...)...)),
		}

		if b.dir != "" {
			opts = append(opts, interp.Dir(b.dir))
		}

		runner, err := interp.New(opts...)
		if err != nil {
			return err
		}

		b.runner = runner
	}

	// stdout and stderr point at this call's capture buffer
	return interp.StdIO(strings.NewReader(""), buf, buf)(b.runner)
}
