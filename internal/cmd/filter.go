package cmd

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// filterFunc decides whether a code block participates in a command, based
// on its language tag and option map.
type filterFunc func(lang string, opts map[string]string) bool

// buildFilter compiles a language glob pattern and key=value option
// constraints into a single predicate. Empty inputs accept everything.
func buildFilter(langPattern string, metas []string) (filterFunc, error) {
	var langGlob glob.Glob

	if langPattern != "" && langPattern != "*" {
		g, err := glob.Compile(langPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid lang pattern %q: %w", langPattern, err)
		}

		langGlob = g
	}

	want := make(map[string]string, len(metas))

	for _, m := range metas {
		key, value, found := strings.Cut(m, "=")
		if !found {
			return nil, fmt.Errorf("invalid meta filter %q, expected key=value", m)
		}

		want[strings.ReplaceAll(key, "-", "_")] = value
	}

	return func(lang string, opts map[string]string) bool {
		if langGlob != nil && !langGlob.Match(lang) {
			return false
		}

		for key, value := range want {
			if opts[key] != value {
				return false
			}
		}

		return true
	}, nil
}
