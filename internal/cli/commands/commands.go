package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pws/internal/cli"
	"pws/internal/config"
	"pws/internal/domain"
	"pws/internal/driver"
	"pws/internal/execution"
	"pws/internal/prompt"
	"pws/internal/report"
	"pws/internal/storage"
)

// ErrRunFailed is returned when a test run finished with a failing verdict.
// The driver has already reported why, so callers only set the exit code.
var ErrRunFailed = errors.New("test run failed")

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	CI       *CICommand
	List     *ListCommand
	Report   *ReportCommand
	Allure   *AllureCommand
	History  *HistoryCommand
	Data     *DataCommand
	Schedule *ScheduleCommand
}

// NewCommands creates all commands. cfg is filled in by Register once flags are parsed.
func NewCommands(cfg *config.Config) *Commands {
	ci := NewCICommand(cfg)
	return &Commands{
		Run:      NewRunCommand(cfg),
		CI:       ci,
		List:     NewListCommand(cfg),
		Report:   NewReportCommand(cfg),
		Allure:   NewAllureCommand(cfg),
		History:  NewHistoryCommand(cfg),
		Data:     NewDataCommand(cfg),
		Schedule: NewScheduleCommand(cfg, ci),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "p", "", "Path to the test suite project (defaults to the current directory)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Load pws.yaml and PWS_* overrides, then apply flags after parsing
		loaded, err := config.Load(flags.ProjectPath)
		if err != nil {
			return err
		}
		*cfg = *loaded
		cfg.Flags = flags.ToConfigFlags()
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Pick environment, spec files and tag interactively, then run them",
		Long:  "Prompt for an environment, the spec files and an optional tag, run Playwright with that selection and mail the report",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Folder holding the spec files (defaults to tests)")
	rootCmd.AddCommand(runCmd)

	// CI command
	ciCmd := &cobra.Command{
		Use:   "ci",
		Short: "Run the suite without prompts",
		Long:  "Run the same pipeline as run, answering from flags or TEST_ENV, TEST_FILES and TEST_TAG",
		Args:  cobra.NoArgs,
		RunE:  c.CI.Execute,
	}
	addCIFlags(ciCmd, flags)
	rootCmd.AddCommand(ciCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered spec files",
		Long:  "Scan and list the spec files without executing them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter files by name pattern (supports wildcards, e.g., 'Login*' or '*.smoke.spec.js')")
	listCmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Folder holding the spec files (defaults to tests)")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases under each file")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Mail the last Playwright report",
		Long:  "Send playwright-report/index.html to the configured recipients",
		Args:  cobra.NoArgs,
		RunE:  c.Report.Execute,
	}
	rootCmd.AddCommand(reportCmd)

	// Allure command
	allureCmd := &cobra.Command{
		Use:   "allure",
		Short: "Generate the Allure report",
		Long:  "Write Allure environment metadata from an environment profile and run allure generate",
		Args:  cobra.NoArgs,
		RunE:  c.Allure.Execute,
	}
	allureCmd.Flags().StringVarP(&flags.AllureEnv, "env", "e", "qa", "Environment profile to describe in the report")
	rootCmd.AddCommand(allureCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View past runs",
		Long:  "Display the recorded runs in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print a table instead of opening the viewer")
	rootCmd.AddCommand(historyCmd)

	// Data command
	dataCmd := &cobra.Command{
		Use:   "data [test-name]",
		Short: "Show Excel test data",
		Long:  "Print the test data row for a test name, or every row of the sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Data.Execute,
	}
	dataCmd.Flags().StringVarP(&flags.Sheet, "sheet", "s", "Sheet1", "Worksheet to read")
	rootCmd.AddCommand(dataCmd)

	// Schedule command
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the suite on a cron schedule",
		Long:  "Run the ci pipeline every time the cron expression fires, until interrupted",
		Args:  cobra.NoArgs,
		RunE:  c.Schedule.Execute,
	}
	scheduleCmd.Flags().StringVar(&flags.Cron, "cron", "", "Cron expression, e.g. '0 6 * * 1-5' or '@every 1h'")
	scheduleCmd.MarkFlagRequired("cron")
	addCIFlags(scheduleCmd, flags)
	rootCmd.AddCommand(scheduleCmd)
}

func addCIFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Env, "env", "e", "", "Environment to run against (defaults to TEST_ENV, then qa)")
	cmd.Flags().StringVar(&flags.Files, "files", "", "Comma separated spec file names or numbers (defaults to TEST_FILES, then all)")
	cmd.Flags().StringVar(&flags.Tag, "tag", "", "Tag to filter by (defaults to TEST_TAG, then none)")
	cmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Folder holding the spec files (defaults to tests)")
}

// runDriver wires one driver run against the real runner, mailer and history store
func runDriver(ctx context.Context, cfg *config.Config, p prompt.Prompter) (domain.RunResult, error) {
	var recorder driver.Recorder
	st, err := storage.New(cfg)
	if err != nil {
		color.Yellow("⚠️ Run history unavailable: %v", err)
	} else {
		defer st.Close()
		recorder = st
	}

	notifier := report.NewNotifier(cfg, report.NewSMTPSender(cfg.Mail))
	d := driver.New(cfg, p, execution.NewRunner(cfg), notifier, recorder)
	return d.Run(ctx)
}

// verdict maps a driver outcome to the command error. Driver errors were already
// printed, so they are marked with ErrRunFailed too.
func verdict(res domain.RunResult, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRunFailed, err)
	}
	if !res.Success {
		return ErrRunFailed
	}
	return nil
}
