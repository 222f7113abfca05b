package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pws/internal/cli"
	"pws/internal/config"
	"pws/internal/domain"
	"pws/internal/report"
	"pws/internal/storage"
)

func init() {
	color.NoColor = true
}

func newProject(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"tests/login.spec.js":    "test('@smoke logs in', async () => {});\ntest('logs out', async () => {});\n",
		"tests/checkout.spec.js": "test('@regression pays', async () => {});\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	cfg := config.New()
	cfg.ProjectPath = dir
	return cfg
}

func newCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func writeProfile(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	dir := cfg.GetEnvPath()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env."+name), []byte(content), 0644))
}

func TestCIAnswers(t *testing.T) {
	tests := []struct {
		name  string
		flags config.Flags
		env   map[string]string
		want  []string
	}{
		{"defaults", config.Flags{}, nil, []string{"qa", "all", "none"}},
		{"environment", config.Flags{}, map[string]string{"TEST_ENV": "stage", "TEST_FILES": "login.spec.js", "TEST_TAG": "@smoke"}, []string{"stage", "login.spec.js", "@smoke"}},
		{"flags win", config.Flags{Env: "production", Tag: "regression"}, map[string]string{"TEST_ENV": "stage", "TEST_TAG": "@smoke"}, []string{"production", "all", "regression"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Flags = tt.flags
			cc := NewCICommand(cfg)
			cc.getenv = func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.want, cc.answers())
		})
	}
}

func TestVerdict(t *testing.T) {
	assert.NoError(t, verdict(domain.RunResult{Success: true}, nil))
	assert.ErrorIs(t, verdict(domain.RunResult{Success: false}, nil), ErrRunFailed)

	pre := &domain.PreconditionError{Msg: "tests directory not found"}
	err := verdict(domain.RunResult{}, pre)
	assert.ErrorIs(t, err, ErrRunFailed)
	var target *domain.PreconditionError
	assert.True(t, errors.As(err, &target))
}

func TestRegister(t *testing.T) {
	root := &cobra.Command{Use: "pws"}
	cfg := config.New()
	var flags cli.Flags
	NewCommands(cfg).Register(root, &flags, cfg)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "ci", "list", "report", "allure", "history", "data", "schedule"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("project"))
}

func TestRootListWithProjectFlag(t *testing.T) {
	cfg := newProject(t)
	project := cfg.ProjectPath

	root := &cobra.Command{Use: "pws", SilenceUsage: true, SilenceErrors: true}
	loaded := config.New()
	var flags cli.Flags
	NewCommands(loaded).Register(root, &flags, loaded)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--project", project, "--filter", "login*"})
	require.NoError(t, root.Execute())

	assert.Equal(t, project, loaded.ProjectPath)
	assert.Contains(t, buf.String(), "login.spec.js")
	assert.NotContains(t, buf.String(), "checkout.spec.js")
}

func TestListCommand(t *testing.T) {
	cfg := newProject(t)
	cfg.Flags.TestCases = true

	cmd, buf := newCmd()
	require.NoError(t, NewListCommand(cfg).Execute(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Found 2 test file(s)")
	assert.Contains(t, out, "checkout.spec.js")
	assert.Contains(t, out, "@smoke logs in")
	assert.Contains(t, out, "logs out")
}

func TestListCommandMissingDir(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	cmd, _ := newCmd()
	err := NewListCommand(cfg).Execute(cmd, nil)
	var pre *domain.PreconditionError
	assert.True(t, errors.As(err, &pre))
}

func TestHistoryCommandPlain(t *testing.T) {
	cfg := newProject(t)
	cfg.Flags.Plain = true
	st := storage.NewJSONStorage(cfg)
	require.NoError(t, st.Save(domain.RunRecord{ID: "1", Environment: "stage", All: true, Success: true}))

	cmd, buf := newCmd()
	require.NoError(t, NewHistoryCommand(cfg).Execute(cmd, nil))
	assert.Contains(t, buf.String(), "stage")
	assert.Contains(t, buf.String(), "passed")
}

func TestDataCommand(t *testing.T) {
	cfg := newProject(t)
	cfg.Flags.Sheet = "Sheet1"

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"TestName", "Username", "Password"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"validLogin", "alice", "secret"}))
	path := cfg.GetTestDataPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	t.Run("by test name", func(t *testing.T) {
		cmd, buf := newCmd()
		require.NoError(t, NewDataCommand(cfg).Execute(cmd, []string{"validlogin"}))
		assert.Contains(t, buf.String(), "Username: alice")
		assert.Contains(t, buf.String(), "Password: secret")
	})

	t.Run("all rows", func(t *testing.T) {
		cmd, buf := newCmd()
		require.NoError(t, NewDataCommand(cfg).Execute(cmd, nil))
		assert.True(t, strings.HasPrefix(buf.String(), "Row 2"))
		assert.Contains(t, buf.String(), "TestName: validLogin")
	})

	t.Run("unknown test", func(t *testing.T) {
		cmd, _ := newCmd()
		assert.Error(t, NewDataCommand(cfg).Execute(cmd, []string{"missing"}))
	})
}

func TestScheduleInvalidCron(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Cron = "not a cron"
	sc := NewScheduleCommand(cfg, NewCICommand(cfg))

	cmd, _ := newCmd()
	_, err := sc.newCron(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron expression")
}

func TestScheduleValidCron(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Cron = "@every 1h"
	sc := NewScheduleCommand(cfg, NewCICommand(cfg))

	cmd, _ := newCmd()
	c, err := sc.newCron(cmd)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}

func TestCIAnswersMapsFileNames(t *testing.T) {
	cfg := newProject(t)
	cc := NewCICommand(cfg)
	cc.getenv = func(k string) string {
		if k == "TEST_FILES" {
			return "login.spec.js, 1, missing.spec.js"
		}
		return ""
	}

	assert.Equal(t, []string{"qa", "2,1,missing.spec.js", "none"}, cc.answers())
}

func TestCIRun(t *testing.T) {
	tests := []struct {
		name      string
		command   []string
		files     string
		wantErr   error
		wantFiles []string
	}{
		{name: "passing runner", command: []string{"sh", "-c", "exit 0"}},
		{name: "failing runner", command: []string{"sh", "-c", "exit 1"}, wantErr: ErrRunFailed},
		{name: "files by name", command: []string{"sh", "-c", "exit 0"}, files: "login.spec.js", wantFiles: []string{"login.spec.js"}},
		{name: "unknown file name", command: []string{"sh", "-c", "exit 0"}, files: "missing.spec.js", wantErr: ErrRunFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newProject(t)
			writeProfile(t, cfg, "qa", "BASE_URL=https://qa.example.com\n")
			cfg.Runner.Command = tt.command
			cfg.Flags.Files = tt.files

			cc := NewCICommand(cfg)
			cc.getenv = func(string) string { return "" }

			var out bytes.Buffer
			err := cc.run(context.Background(), &out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out.String(), "qa")

			if tt.wantFiles != nil {
				records, err := storage.NewJSONStorage(cfg).Load()
				require.NoError(t, err)
				require.Len(t, records, 1)
				assert.Equal(t, tt.wantFiles, records[0].Files)
				assert.True(t, records[0].Success)
			}
		})
	}
}

func TestCIRunMissingProfile(t *testing.T) {
	cfg := newProject(t)
	cfg.Runner.Command = []string{"sh", "-c", "exit 0"}

	cc := NewCICommand(cfg)
	cc.getenv = func(string) string { return "" }

	err := cc.run(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrRunFailed)
	assert.ErrorIs(t, err, config.ErrProfileNotFound)
}

func TestAllureCommandDefaultsToQA(t *testing.T) {
	project := newProject(t)
	writeProfile(t, project, "qa", "BASE_URL=https://qa.example.com\nPROJECT_NAME=Shop\n")

	root := &cobra.Command{Use: "pws", SilenceUsage: true, SilenceErrors: true}
	loaded := config.New()
	var flags cli.Flags
	cmds := NewCommands(loaded)
	cmds.Register(root, &flags, loaded)

	var calls [][]string
	cmds.Allure.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return nil, nil
	}

	root.SetArgs([]string{"allure", "--project", project.ProjectPath})
	require.NoError(t, root.Execute())

	assert.Equal(t, "qa", loaded.Flags.AllureEnv)
	require.Len(t, calls, 1)
	assert.Equal(t, "allure", calls[0][0])
	assert.Contains(t, calls[0], "generate")

	props, err := os.ReadFile(filepath.Join(loaded.GetAllureResultsPath(), "environment.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(props), "ENV=qa")
	assert.Contains(t, string(props), "PROJECT_NAME=Shop")
}

func TestAllureCommandEnvFlag(t *testing.T) {
	cfg := newProject(t)
	writeProfile(t, cfg, "stage", "PROJECT_NAME=Shop\n")
	cfg.Flags.AllureEnv = "stage"

	ac := NewAllureCommand(cfg)
	ac.run = func(context.Context, string, ...string) ([]byte, error) { return nil, nil }

	cmd, _ := newCmd()
	require.NoError(t, ac.Execute(cmd, nil))

	props, err := os.ReadFile(filepath.Join(cfg.GetAllureResultsPath(), "environment.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(props), "ENV=stage")
}

func TestReportCommandMissingReport(t *testing.T) {
	cfg := newProject(t)

	cmd, _ := newCmd()
	err := NewReportCommand(cfg).Execute(cmd, nil)
	assert.ErrorIs(t, err, report.ErrReportNotFound)
}

func TestReportCommandMailDisabled(t *testing.T) {
	cfg := newProject(t)
	path := cfg.GetReportPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	cmd, _ := newCmd()
	assert.NoError(t, NewReportCommand(cfg).Execute(cmd, nil))
}

func TestReportCommandWarnsOnHistoryError(t *testing.T) {
	cfg := newProject(t)
	cfg.Storage.DSN = "not a dsn"

	var warnings bytes.Buffer
	prev := color.Output
	color.Output = &warnings
	t.Cleanup(func() { color.Output = prev })

	cmd, _ := newCmd()
	err := NewReportCommand(cfg).Execute(cmd, nil)
	assert.ErrorIs(t, err, report.ErrReportNotFound)
	assert.Contains(t, warnings.String(), "Run history unavailable")
}
