package main

import (
	"errors"
	"fmt"
	"os"

	"pws/internal/cli"
	"pws/internal/cli/commands"
	"pws/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "pws",
		Short:         "Playwright suite driver",
		Long:          `Select an environment, spec files and a tag, run the Playwright suite and mail the report. Also lists specs, generates Allure reports, shows run history and reads Excel test data.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command; the exit code is 1 for any failure
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
