package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"pws/internal/config"
)

// ScheduleCommand runs the ci pipeline on a cron schedule
type ScheduleCommand struct {
	config *config.Config
	ci     *CICommand
}

// NewScheduleCommand creates a new ScheduleCommand
func NewScheduleCommand(cfg *config.Config, ci *CICommand) *ScheduleCommand {
	return &ScheduleCommand{config: cfg, ci: ci}
}

// Execute runs the command until SIGINT or SIGTERM
func (sc *ScheduleCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := sc.newCron(cmd)
	if err != nil {
		return err
	}

	c.Start()
	color.Cyan("⏰ Scheduled test runs with %q. Press Ctrl+C to stop.", sc.config.Flags.Cron)

	<-ctx.Done()
	color.Yellow("Stopping scheduler, waiting for the current run to finish...")
	<-c.Stop().Done()
	return nil
}

// newCron builds a scheduler whose runs never overlap
func (sc *ScheduleCommand) newCron(cmd *cobra.Command) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(sc.config.Flags.Cron, func() {
		// A launched run is never cancelled
		err := sc.ci.run(context.Background(), cmd.OutOrStdout())
		switch {
		case err == nil:
			color.Green("✅ Scheduled run passed")
		case errors.Is(err, ErrRunFailed):
			color.Red("❌ Scheduled run failed")
		default:
			color.Red("❌ Scheduled run aborted: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", sc.config.Flags.Cron, err)
	}
	return c, nil
}
