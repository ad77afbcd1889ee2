// Package exec runs code block content and captures its output. Execution
// never fails from the caller's point of view: every failure mode is folded
// into the captured text, because the document always receives some output
// for an attempted execution.
package exec

import (
	"context"
	"fmt"
	"strings"
)

// Session owns all interpreter state for one document run. Shell state
// (variables, cwd, functions) and the environment handed to the python
// subprocess persist across blocks within the session, so later blocks can
// depend on side effects of earlier ones. Sessions are not safe for
// concurrent use; blocks run strictly in source order.
type Session struct {
	shell  *shellBackend
	python *pythonBackend
}

// Option configures a Session.
type Option func(*Session)

// WithDir sets the working directory for executed blocks.
func WithDir(dir string) Option {
	return func(s *Session) {
		s.shell.dir = dir
		s.python.dir = dir
	}
}

// WithEnviron seeds the environment for executed blocks, "key=value" pairs.
func WithEnviron(env []string) Option {
	return func(s *Session) {
		s.shell.env = append(s.shell.env, env...)
		s.python.env = append(s.python.env, env...)
	}
}

// WithPython overrides the python interpreter binary.
func WithPython(bin string) Option {
	return func(s *Session) {
		s.python.bin = bin
	}
}

// NewSession returns a Session with fresh interpreter state.
func NewSession(opts ...Option) *Session {
	s := &Session{
		shell:  &shellBackend{},
		python: newPythonBackend(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Execute runs code under the backend selected by lang and returns the
// captured stdout and stderr, outer whitespace trimmed. Unrecognized
// languages and backend failures produce a human-readable diagnostic string
// instead of an error.
func (s *Session) Execute(ctx context.Context, lang, code string) string {
	var out string

	switch strings.ToLower(lang) {
	case "bash", "sh", "shell":
		out = s.shell.run(ctx, code)
	case "python", "py":
		out = s.python.run(ctx, code)
	default:
		out = fmt.Sprintf("[mdrun] unsupported language %q, skipping execution", lang)
	}

	return strings.TrimSpace(out)
}
