package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pws/internal/config"
)

func TestAllureGenerate(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	var gotName string
	var gotArgs []string
	a := NewAllure(cfg)
	a.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return nil, nil
	}

	profile := config.NewProfile("stage", map[string]string{
		"BASE_URL":     "https://stage.example.com",
		"USERNAME":     "tester",
		"PROJECT_NAME": "Shop",
	})
	require.NoError(t, a.Generate(context.Background(), profile))

	assert.Equal(t, "allure", gotName)
	assert.Equal(t, []string{"generate", cfg.GetAllureResultsPath(), "--clean", "-o", cfg.GetAllureOutputPath()}, gotArgs)

	props, err := os.ReadFile(filepath.Join(cfg.GetAllureResultsPath(), "environment.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(props), "ENV=stage")
	assert.Contains(t, string(props), "BASE_URL=https://stage.example.com")
	assert.Contains(t, string(props), "PROJECT_NAME=Shop")

	data, err := os.ReadFile(filepath.Join(cfg.GetAllureResultsPath(), "executor.json"))
	require.NoError(t, err)
	var exec allureExecutor
	require.NoError(t, json.Unmarshal(data, &exec))
	assert.Equal(t, "Allure Executor", exec.Name)
	assert.Equal(t, "Shop - Allure Report (stage)", exec.ReportName)
}

func TestAllureGenerateDefaults(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	a := NewAllure(cfg)
	a.run = func(context.Context, string, ...string) ([]byte, error) { return nil, nil }

	require.NoError(t, a.Generate(context.Background(), config.NewProfile("", nil)))

	data, err := os.ReadFile(filepath.Join(cfg.GetAllureResultsPath(), "executor.json"))
	require.NoError(t, err)
	var exec allureExecutor
	require.NoError(t, json.Unmarshal(data, &exec))
	assert.Equal(t, "Demo Project - Allure Report (QA)", exec.ReportName)
}

func TestAllureGenerateFailure(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	a := NewAllure(cfg)
	a.run = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("allure: command not found"), errors.New("exit status 127")
	}

	err := a.Generate(context.Background(), config.NewProfile("qa", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command not found")
}
