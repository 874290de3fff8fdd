package parser

import (
	"fmt"
	"path/filepath"
)

// ResolveInputs expands input paths and glob patterns into a deduplicated list.
// Inputs keep the order they were given in; the matches of one glob are
// lexically ordered. An empty list means standard input. Patterns that match
// nothing are kept as literal paths so opening them reports the missing file.
func ResolveInputs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return []string{Stdin}, nil
	}

	seen := make(map[string]bool)
	var result []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		if pattern == Stdin {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
