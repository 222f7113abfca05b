package domain

import "sort"

// TestFile is the file name of a discoverable spec file, relative to the test directory.
type TestFile = string

// TagSet is a de-duplicated set of @-prefixed test labels.
type TagSet map[string]struct{}

// NewTagSet creates a TagSet holding the given tags
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		set.Add(tag)
	}
	return set
}

// Add inserts a tag
func (s TagSet) Add(tag string) {
	s[tag] = struct{}{}
}

// Has reports whether the tag is in the set
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// List returns the tags sorted for stable display
func (s TagSet) List() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Selection is the resolved operator intent for one run
type Selection struct {
	Files []TestFile // Files to run, in the order the operator picked them
	All   bool       // Operator asked for every file; the runner gets no file arguments
	Tags  []string   // Zero or one tag filter
}
