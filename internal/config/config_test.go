package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/njchilds90/minimaple"
	"github.com/njchilds90/minimaple/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, minimaple.DefaultMaxIterations, cfg.Pipeline.MaxIterations)
	require.True(t, cfg.Pipeline.RestoreDivision)
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, `
[pipeline]
max_iterations = 12
restore_division = false

[log]
level = "debug"
format = "production"

[server]
addr = "127.0.0.1:9000"
read_timeout = "3s"
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := config.FindAndLoad(nested)
	require.NoError(t, err)
	require.Equal(t, want, path)
	require.Equal(t, 12, cfg.Pipeline.MaxIterations)
	require.False(t, cfg.Pipeline.RestoreDivision)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, 3*time.Second, cfg.Server.ReadTimeout.Duration)
	// Unset keys keep their defaults.
	require.Equal(t, 10*time.Second, cfg.Server.WriteTimeout.Duration)
	require.Equal(t, "text", cfg.Output.Format)
}

func TestFindAndLoadWithoutFile(t *testing.T) {
	cfg, path, err := config.FindAndLoad(t.TempDir())
	require.NoError(t, err)
	// A config higher up the real filesystem would be found too; only
	// check the defaults when nothing was.
	if path == "" {
		require.Equal(t, config.DefaultConfig(), cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"iterations": "[pipeline]\nmax_iterations = -1\n",
		"level":      "[log]\nlevel = \"loud\"\n",
		"format":     "[log]\nformat = \"pretty\"\n",
		"output":     "[output]\nformat = \"svg\"\n",
		"duration":   "[server]\nread_timeout = \"soon\"\n",
		"unknown":    "[pipeline]\nmax_depth = 3\n",
		"syntax":     "[pipeline\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			_, err := config.Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoadAcceptsZeroIterations(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[pipeline]\nmax_iterations = 0\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Pipeline.MaxIterations)

	sum := strings.TrimSuffix(strings.Repeat("x+", 80), "+")
	got, err := minimaple.New(cfg.PipelineOptions()...).Differentiate(sum, "x")
	require.NoError(t, err)
	require.Equal(t, "80", got)
}

func TestPipelineOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pipeline.RestoreDivision = false

	d := minimaple.New(cfg.PipelineOptions()...)
	got, err := d.Differentiate("1/x", "x")
	require.NoError(t, err)
	require.Equal(t, "-x^-2", got)

	cfg.Pipeline.MaxIterations = 1
	_, err = minimaple.New(cfg.PipelineOptions()...).Differentiate("x", "x")
	var limit *minimaple.IterationLimitError
	require.ErrorAs(t, err, &limit)
	require.Equal(t, 1, limit.Limit)
}

func TestNewLogger(t *testing.T) {
	cfg := config.DefaultConfig()
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)

	cfg.Log.Format = "production"
	cfg.Log.Level = "warn"
	logger, err = cfg.NewLogger()
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(-1))
}
