package commands

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/discovery"
	"pws/internal/domain"
	"pws/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	extractor *discovery.TagExtractor
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    discovery.NewFilter(),
		extractor: discovery.NewTagExtractor(),
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	testPath := lc.config.GetTestPath()
	tests, err := discovery.NewScanner(lc.config.SpecSuffix).Scan(testPath)
	if err != nil {
		return err
	}

	// Filter tests
	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	var titles map[domain.TestFile][]string
	if lc.config.Flags.TestCases {
		titles = make(map[domain.TestFile][]string, len(tests))
		for _, test := range tests {
			cases, err := lc.extractor.Titles(filepath.Join(testPath, test))
			if err != nil {
				color.Red("Error reading test file %s: %v", test, err)
				continue
			}
			titles[test] = cases
		}
	}

	ui.NewFormatterTo(cmd.OutOrStdout()).PrintTestList(tests, titles)
	return nil
}
