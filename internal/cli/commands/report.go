package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/domain"
	"pws/internal/report"
	"pws/internal/storage"
	"pws/internal/ui"
)

// ReportCommand mails the current Playwright report on demand
type ReportCommand struct {
	config *config.Config
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config) *ReportCommand {
	return &ReportCommand{config: cfg}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	notifier := report.NewNotifier(rc.config, report.NewSMTPSender(rc.config.Mail))
	last := rc.lastRun()
	return ui.Spin("📧 Sending test report...", func() error {
		return notifier.SendReport(cmd.Context(), last)
	})
}

// lastRun returns the newest recorded run, or nil when there is no history
func (rc *ReportCommand) lastRun() *domain.RunRecord {
	st, err := storage.New(rc.config)
	if err != nil {
		color.Yellow("⚠️ Run history unavailable: %v", err)
		return nil
	}
	defer st.Close()

	records, err := st.Load()
	if err != nil {
		color.Yellow("⚠️ Failed to load run history: %v", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}
	return &records[len(records)-1]
}
