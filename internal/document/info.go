package document

import (
	"strings"

	"github.com/google/shlex"
)

// execMarker is the info-string keyword that marks a fenced block for
// execution.
const execMarker = "exec"

// ParseInfoString splits a fence's info string into a language tag, an
// executable flag, and an option map. Splitting follows shell quoting rules;
// on unbalanced quotes it degrades to whitespace splitting rather than
// failing. Tokens after the language are either the exec keyword, key=value
// pairs (values may be quoted), or bare flags stored with an empty value.
// Option keys are normalized by replacing '-' with '_'. Last write wins on
// duplicate keys.
func ParseInfoString(info string) (lang string, executable bool, opts map[string]string) {
	parts := splitInfo(info)
	if len(parts) == 0 {
		return "", false, map[string]string{}
	}

	executable, opts = parseOptionTokens(parts[1:])

	return parts[0], executable, opts
}

func splitInfo(info string) []string {
	info = strings.TrimSpace(info)
	if info == "" {
		return nil
	}

	parts, err := shlex.Split(info)
	if err != nil {
		return strings.Fields(info)
	}

	return parts
}

// parseOptionTokens interprets info-string tokens after the language slot.
// It is shared with the open-marker parser, which has no language slot.
func parseOptionTokens(parts []string) (executable bool, opts map[string]string) {
	opts = make(map[string]string)

	for _, part := range parts {
		if part == execMarker {
			executable = true

			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found {
			value = ""
		}

		opts[normalizeKey(key)] = strings.Trim(value, `"'`)
	}

	return executable, opts
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}
