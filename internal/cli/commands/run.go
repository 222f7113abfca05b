package commands

import (
	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/prompt"
)

// RunCommand handles the interactive run command
type RunCommand struct {
	config *config.Config
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{config: cfg}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	p := prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	return verdict(runDriver(cmd.Context(), rc.config, p))
}
