package commands

import (
	"context"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/discovery"
	"pws/internal/prompt"
)

// CICommand runs the pipeline with answers taken from flags or the environment
type CICommand struct {
	config *config.Config
	getenv func(string) string
}

// NewCICommand creates a new CICommand
func NewCICommand(cfg *config.Config) *CICommand {
	return &CICommand{config: cfg, getenv: os.Getenv}
}

// Execute runs the command
func (cc *CICommand) Execute(cmd *cobra.Command, args []string) error {
	return cc.run(cmd.Context(), cmd.OutOrStdout())
}

func (cc *CICommand) run(ctx context.Context, out io.Writer) error {
	p := prompt.NewScripted(out, cc.answers()...)
	return verdict(runDriver(ctx, cc.config, p))
}

// answers returns the environment, files and tag answers. Flags win over
// TEST_ENV, TEST_FILES and TEST_TAG; the fallbacks are qa, all and none.
func (cc *CICommand) answers() []string {
	flags := cc.config.Flags
	return []string{
		firstNonEmpty(flags.Env, cc.getenv("TEST_ENV"), "qa"),
		cc.fileNumbers(firstNonEmpty(flags.Files, cc.getenv("TEST_FILES"), "all")),
		firstNonEmpty(flags.Tag, cc.getenv("TEST_TAG"), "none"),
	}
}

// fileNumbers rewrites spec file names in a files answer to their 1-based numbers so
// the answer reads like one typed at the interactive prompt. Unknown names are left
// for the resolver to drop.
func (cc *CICommand) fileNumbers(answer string) string {
	if strings.EqualFold(strings.TrimSpace(answer), "all") {
		return answer
	}

	files, err := discovery.NewScanner(cc.config.SpecSuffix).Scan(cc.config.GetTestPath())
	if err != nil {
		return answer
	}

	tokens := strings.Split(answer, ",")
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if index := slices.Index(files, token); index != -1 {
			token = strconv.Itoa(index + 1)
		}
		tokens[i] = token
	}
	return strings.Join(tokens, ",")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
