package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
)

const defaultPythonBin = "python3"

// pythonBackend runs python blocks through a subprocess, combining stdout
// and stderr. Environment entries persist across blocks within a session;
// interpreter state does not, since each block is a fresh process.
type pythonBackend struct {
	bin string
	dir string
	env []string
}

func newPythonBackend() *pythonBackend {
	return &pythonBackend{bin: defaultPythonBin}
}

func (b *pythonBackend) run(ctx context.Context, code string) string {
	cmd := osexec.CommandContext(ctx, b.bin, "-c", code)
	cmd.Dir = b.dir
	cmd.Env = append(os.Environ(), b.env...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			// the traceback is already in the buffer
			fmt.Fprintf(&buf, "[mdrun] exit status %d\n", exitErr.ExitCode())
		} else {
			fmt.Fprintf(&buf, "[mdrun] python error: %v\n", err)
		}
	}

	return buf.String()
}
