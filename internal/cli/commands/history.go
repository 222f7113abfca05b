package commands

import (
	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/storage"
	"pws/internal/ui"
)

// HistoryCommand shows the recorded runs
type HistoryCommand struct {
	config *config.Config
	viewer ui.Viewer
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{
		config: cfg,
		viewer: ui.NewHistoryViewer(),
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	st, err := storage.New(hc.config)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.Load()
	if err != nil {
		return err
	}

	if hc.config.Flags.Plain {
		ui.NewFormatterTo(cmd.OutOrStdout()).PrintHistory(records)
		return nil
	}
	return hc.viewer.View(records)
}
