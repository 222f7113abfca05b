package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/report"
	"pws/internal/ui"
)

// AllureCommand generates the Allure report for an environment profile
type AllureCommand struct {
	config *config.Config
	run    report.CommandFunc
}

// NewAllureCommand creates a new AllureCommand
func NewAllureCommand(cfg *config.Config) *AllureCommand {
	return &AllureCommand{config: cfg}
}

// Execute runs the command
func (ac *AllureCommand) Execute(cmd *cobra.Command, args []string) error {
	env := firstNonEmpty(ac.config.Flags.AllureEnv, "qa")
	profile, err := config.LoadProfile(ac.config.GetEnvPath(), env)
	if err != nil {
		if !errors.Is(err, config.ErrProfileNotFound) {
			return err
		}
		color.Yellow("⚠️ %v; report metadata will be incomplete", err)
		profile = config.NewProfile(env, nil)
	}

	allure := report.NewAllure(ac.config)
	if ac.run != nil {
		allure = allure.WithRunner(ac.run)
	}
	return ui.Spin("📊 Generating Allure report...", func() error {
		return allure.Generate(cmd.Context(), profile)
	})
}
