package execution

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pws/internal/config"
	"pws/internal/domain"
)

func TestRunner_Command(t *testing.T) {
	cfg := config.New()
	r := NewRunner(cfg)

	tests := []struct {
		name string
		sel  domain.Selection
		want string
	}{
		{
			name: "all files no tag",
			sel:  domain.Selection{Files: []string{"a.spec.js", "b.spec.js"}, All: true},
			want: "npx playwright test",
		},
		{
			name: "all files with tag",
			sel:  domain.Selection{Files: []string{"a.spec.js"}, All: true, Tags: []string{"@smoke"}},
			want: "npx playwright test --grep @smoke",
		},
		{
			name: "subset",
			sel:  domain.Selection{Files: []string{"b.spec.js", "d.spec.js"}},
			want: "npx playwright test tests/b.spec.js tests/d.spec.js",
		},
		{
			name: "subset with tags",
			sel:  domain.Selection{Files: []string{"b.spec.js"}, Tags: []string{"@smoke", "@ui"}},
			want: "npx playwright test tests/b.spec.js --grep @smoke|@ui",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Command(tt.sel).String())
		})
	}

	t.Run("grep pattern is a single argument", func(t *testing.T) {
		cmd := r.Command(domain.Selection{All: true, Tags: []string{"@smoke", "@ui"}})
		assert.Equal(t, []string{"playwright", "test", "--grep", "@smoke|@ui"}, cmd.Args)
	})

	t.Run("configured runner is not mutated", func(t *testing.T) {
		r.Command(domain.Selection{Files: []string{"x.spec.js"}})
		assert.Equal(t, []string{"npx", "playwright", "test"}, cfg.Runner.Command)
	})
}

func TestRunner_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	newRunner := func(script string) *Runner {
		cfg := config.New()
		cfg.ProjectPath = t.TempDir()
		cfg.Runner.Command = []string{"sh", "-c", script, "runner"}
		r := NewRunner(cfg)
		devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		require.NoError(t, err)
		t.Cleanup(func() { devNull.Close() })
		r.stdin, r.stdout, r.stderr = devNull, devNull, devNull
		return r
	}
	all := domain.Selection{All: true}

	t.Run("exit zero is success", func(t *testing.T) {
		res := newRunner("exit 0").Execute(context.Background(), all, config.Profile{})
		assert.True(t, res.Success)
	})

	t.Run("non-zero exit is failure", func(t *testing.T) {
		res := newRunner("exit 3").Execute(context.Background(), all, config.Profile{})
		assert.False(t, res.Success)
	})

	t.Run("launch failure is failure", func(t *testing.T) {
		r := newRunner("exit 0")
		r.config.Runner.Command = []string{filepath.Join(t.TempDir(), "no-such-binary")}
		res := r.Execute(context.Background(), all, config.Profile{})
		assert.False(t, res.Success)
	})

	t.Run("profile variables reach the child", func(t *testing.T) {
		r := newRunner(`test "$BASE_URL" = "https://qa.example.com" && test "$ENV" = "qa"`)
		profile := config.NewProfile("qa", map[string]string{"BASE_URL": "https://qa.example.com"})
		res := r.Execute(context.Background(), all, profile)
		assert.True(t, res.Success)
	})
}
