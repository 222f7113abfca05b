package execution

import (
	"context"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"pws/internal/config"
	"pws/internal/domain"
)

// Command is the argv of one test runner invocation
type Command struct {
	Name string
	Args []string
}

// String renders the command for display
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner launches the external test runner as a child process
type Runner struct {
	config *config.Config
	stdin  *os.File
	stdout *os.File
	stderr *os.File
}

// NewRunner creates a new Runner using the process's standard streams
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// Command builds the runner invocation: spec paths only when a subset was picked,
// and a grep alternation of the tags when any were picked
func (r *Runner) Command(sel domain.Selection) Command {
	argv := r.config.Runner.Command
	cmd := Command{Name: argv[0], Args: append([]string(nil), argv[1:]...)}

	if !sel.All {
		testDir := r.config.TestDir
		if r.config.Flags.TestDir != "" {
			testDir = r.config.Flags.TestDir
		}
		for _, file := range sel.Files {
			cmd.Args = append(cmd.Args, path.Join(filepath.ToSlash(testDir), file))
		}
	}
	if len(sel.Tags) > 0 {
		cmd.Args = append(cmd.Args, r.config.Runner.GrepFlag, strings.Join(sel.Tags, "|"))
	}
	return cmd
}

// Execute runs the selection with inherited stdio and blocks until the runner exits.
// Any non-zero exit or launch failure is a failed run.
func (r *Runner) Execute(ctx context.Context, sel domain.Selection, profile config.Profile) domain.RunResult {
	command := r.Command(sel)

	color.Cyan("\n🚀 Starting test execution...\n")
	color.White("▶️ Running: %s\n", command.String())

	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = profile.Merge(os.Environ())
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		color.Red("❌ Test execution failed: %v", err)
		return domain.RunResult{Success: false}
	}
	return domain.RunResult{Success: true}
}
