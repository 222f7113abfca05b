package selection

import (
	"slices"
	"strconv"
	"strings"

	"pws/internal/domain"
)

// Resolver turns raw operator answers into a Selection
type Resolver struct {
	environments []string
}

// NewResolver creates a Resolver accepting the given environment names
func NewResolver(environments []string) *Resolver {
	return &Resolver{environments: environments}
}

// Environment accepts an exact, case-sensitive environment name
func (r *Resolver) Environment(input string) (string, error) {
	if slices.Contains(r.environments, input) {
		return input, nil
	}
	return "", domain.NewValidationError("Invalid environment. Please choose: %s.", quoteList(r.environments))
}

// Files resolves "all" or a comma separated list of 1-based indexes against the
// enumerated files. Anything else is dropped; duplicates are kept.
func (r *Resolver) Files(input string, files []domain.TestFile) (domain.Selection, error) {
	if strings.EqualFold(strings.TrimSpace(input), "all") {
		return domain.Selection{Files: slices.Clone(files), All: true}, nil
	}

	var selected []domain.TestFile
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if index := n - 1; index >= 0 && index < len(files) {
			selected = append(selected, files[index])
		}
	}

	if len(selected) == 0 {
		return domain.Selection{}, domain.NewValidationError(`Invalid selection. Please choose "all" or valid file numbers.`)
	}
	return domain.Selection{Files: selected}, nil
}

// Tag resolves "none" or a tag name (with or without the leading @) against the extracted tags
func (r *Resolver) Tag(input string, tags domain.TagSet) ([]string, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "none") {
		return nil, nil
	}

	tag := input
	if !strings.HasPrefix(tag, "@") {
		tag = "@" + tag
	}
	if !tags.Has(tag) {
		return nil, domain.NewValidationError("Invalid tag selection. Please choose a valid tag.")
	}
	return []string{tag}, nil
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
