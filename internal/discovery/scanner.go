package discovery

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"pws/internal/domain"
)

// Scanner lists the spec files of a single test directory
type Scanner struct {
	suffix string
}

// NewScanner creates a new Scanner matching files that end with suffix
func NewScanner(suffix string) *Scanner {
	return &Scanner{suffix: suffix}
}

// Scan returns the names of the spec files directly inside root, sorted by name.
// A missing directory is a precondition failure.
func (s *Scanner) Scan(root string) ([]domain.TestFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &domain.PreconditionError{Msg: fmt.Sprintf("tests directory not found at: %s", root), Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.PreconditionError{Msg: fmt.Sprintf("test path is not a directory: %s", root)}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read tests directory %s: %w", root, err)
	}

	var files []domain.TestFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), s.suffix) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}
