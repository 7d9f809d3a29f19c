// Package prompt turns a set of source units into the final bounded prompt:
// priority ranking, greedy budget packing, and section layout.
package prompt

import (
	"path/filepath"
	"sort"
	"strings"

	"ctxforge/internal/types"
)

// Score assigns the packing priority for a unit from its name and path
// alone. The predicates are evaluated in order; the first match wins.
func Score(u types.SourceUnit) int {
	name := strings.ToLower(u.Name)
	path := strings.ToLower(filepath.ToSlash(u.Path))

	switch {
	case containsAny(name, "config", "package.json", "tsconfig", "pom.xml"):
		return 10
	case containsAny(name, "main", "index", "app") || strings.Contains(path, "src/main"):
		return 8
	case containsAny(name, "service", "manager", "provider", "controller"):
		return 7
	case containsAny(name, "test", "spec") || strings.Contains(path, "test/") || strings.Contains(path, "__tests__"):
		return 3
	default:
		return 5
	}
}

// Rank orders units by descending score. Equal scores fall back to ascending
// path order so the result is deterministic regardless of input order.
func Rank(units []types.SourceUnit) []types.SourceUnit {
	ranked := make([]types.SourceUnit, len(units))
	copy(ranked, units)

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := Score(ranked[i]), Score(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].Path < ranked[j].Path
	})
	return ranked
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
