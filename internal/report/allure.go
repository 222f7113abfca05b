package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"pws/internal/config"
)

// CommandFunc runs an external command and returns its combined output
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Allure generates an Allure report from the raw results of a run
type Allure struct {
	resultsDir string
	outputDir  string
	run        CommandFunc
}

// NewAllure creates a new Allure generator
func NewAllure(cfg *config.Config) *Allure {
	return &Allure{
		resultsDir: cfg.GetAllureResultsPath(),
		outputDir:  cfg.GetAllureOutputPath(),
		run:        execCommand,
	}
}

// WithRunner replaces the function used to launch the allure binary
func (a *Allure) WithRunner(run CommandFunc) *Allure {
	a.run = run
	return a
}

type allureExecutor struct {
	Name       string `json:"name"`
	ReportName string `json:"reportName"`
}

// Generate writes the environment metadata taken from profile and runs `allure generate`
func (a *Allure) Generate(ctx context.Context, profile config.Profile) error {
	if _, err := os.Stat(a.resultsDir); err != nil {
		color.Yellow("⚠️ Allure results directory not found: %s", a.resultsDir)
		if err := os.MkdirAll(a.resultsDir, 0755); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
		color.Green("✅ Directory created: %s", a.resultsDir)
	}

	env := profile.GetOr("ENV", profile.Name)
	props := strings.Join([]string{
		"ENV=" + env,
		"BASE_URL=" + profile.Get("BASE_URL"),
		"USERNAME=" + profile.Get("USERNAME"),
		"PROJECT_NAME=" + profile.Get("PROJECT_NAME"),
	}, "\n")
	if err := os.WriteFile(filepath.Join(a.resultsDir, "environment.properties"), []byte(props), 0644); err != nil {
		return fmt.Errorf("write environment.properties: %w", err)
	}

	if env == "" {
		env = "QA"
	}
	executor := allureExecutor{
		Name:       "Allure Executor",
		ReportName: fmt.Sprintf("%s - Allure Report (%s)", profile.GetOr("PROJECT_NAME", "Demo Project"), env),
	}
	data, err := json.MarshalIndent(executor, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal executor.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.resultsDir, "executor.json"), data, 0644); err != nil {
		return fmt.Errorf("write executor.json: %w", err)
	}

	out, err := a.run(ctx, "allure", "generate", a.resultsDir, "--clean", "-o", a.outputDir)
	if err != nil {
		return fmt.Errorf("error generating Allure report: %w\n%s", err, out)
	}
	color.Green("✅ Allure report generated successfully at: %s", a.outputDir)
	return nil
}
