package discovery

import (
	"path/filepath"
	"strings"

	"pws/internal/domain"
)

// Filter narrows spec files by a name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps files matching pattern. Patterns with * or ? are globs
// ("*Login*.spec.js"); a glob that does not match is retried as an ordered
// sequence of its literal parts. Plain patterns match as a substring.
func (f *Filter) FilterByName(files []domain.TestFile, pattern string) []domain.TestFile {
	if pattern == "" {
		return files
	}

	var filtered []domain.TestFile
	for _, file := range files {
		if matchName(filepath.Base(file), pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if ok, err := filepath.Match(pattern, name); err == nil && ok {
		return true
	}

	rest := name
	literal := false
	for _, part := range strings.FieldsFunc(pattern, func(r rune) bool { return r == '*' || r == '?' }) {
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		literal = true
	}
	return literal
}
