package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"pws/internal/domain"
)

var (
	// A test(...) call whose title string carries at least one @tag, up to the closing quote
	taggedTestPattern = regexp.MustCompile("test\\(.*?['\"`](@\\w+).*?['\"`]")
	tagPattern        = regexp.MustCompile(`@\w+`)
	// The first string argument of a test(...) call
	testTitlePattern = regexp.MustCompile("(?m)\\btest(?:\\.(?:only|skip|fixme|fail))?\\(\\s*(['\"`])(.*?)(['\"`])")
)

// TagExtractor harvests @tags from test titles in spec files
type TagExtractor struct{}

// NewTagExtractor creates a new TagExtractor
func NewTagExtractor() *TagExtractor {
	return &TagExtractor{}
}

// Extract reads every file in dir and returns the set of tags found in test titles.
// A file that cannot be read fails the whole extraction.
func (e *TagExtractor) Extract(dir string, files []domain.TestFile) (domain.TagSet, error) {
	tags := domain.NewTagSet()
	for _, file := range files {
		found, err := e.ExtractFile(filepath.Join(dir, file))
		if err != nil {
			return nil, err
		}
		for _, tag := range found {
			tags.Add(tag)
		}
	}
	return tags, nil
}

// ExtractFile returns every tag of every tagged test title in one file, in source order
func (e *TagExtractor) ExtractFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var tags []string
	for _, match := range taggedTestPattern.FindAllString(string(content), -1) {
		// All tags of the span, not just the first one
		tags = append(tags, tagPattern.FindAllString(match, -1)...)
	}
	return tags, nil
}

// Titles returns the titles of the test(...) calls declared in a spec file
func (e *TagExtractor) Titles(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var titles []string
	for _, match := range testTitlePattern.FindAllStringSubmatch(string(content), -1) {
		if match[1] != match[3] {
			continue
		}
		titles = append(titles, match[2])
	}
	return titles, nil
}
