package harness

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/undo-lang/bc-acceptor/flags"
)

func buildConfig(t *testing.T, args ...string) *Config {
	t.Helper()

	var cfg *Config
	var cfgErr error

	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		cfg, cfgErr = NewConfig(ctx, log.New(), ctx.String(flags.Suite.Name))
		return nil
	}

	require.NoError(t, app.Run(append([]string{"bc-acceptor"}, args...)))
	require.NoError(t, cfgErr)
	return cfg
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := buildConfig(t, "--suite", "test/run/suite.yaml")

	assert.True(t, filepath.IsAbs(cfg.SuiteFile))
	assert.Equal(t, filepath.Dir(cfg.SuiteFile), cfg.TestDir)
	assert.Equal(t, "undo", cfg.ToolBinary)
	assert.Zero(t, cfg.Timeout)
	assert.True(t, cfg.RunOnce)
	assert.True(t, filepath.IsAbs(cfg.LogDir))
}

func TestNewConfigOverrides(t *testing.T) {
	cfg := buildConfig(t,
		"--suite", "test/run/suite.yaml",
		"--testdir", "elsewhere",
		"--tool", "/opt/undo/bin/undo",
		"--timeout", "30s",
		"--run-interval", "1h",
	)

	assert.Equal(t, "/opt/undo/bin/undo", cfg.ToolBinary)
	assert.NotEqual(t, filepath.Dir(cfg.SuiteFile), cfg.TestDir)
	assert.Contains(t, cfg.TestDir, "elsewhere")
	assert.Equal(t, "30s", cfg.Timeout.String())
	assert.False(t, cfg.RunOnce)
	assert.Equal(t, "1h0m0s", cfg.RunInterval.String())
}

func TestNewConfigRequiresSuite(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.Flags

	var cfgErr error
	app.Action = func(ctx *cli.Context) error {
		_, cfgErr = NewConfig(ctx, log.New(), "")
		return nil
	}

	// Bypass the cli-level Required check to exercise NewConfig's own guard.
	require.Error(t, app.Run([]string{"bc-acceptor"}))

	require.NoError(t, app.Run([]string{"bc-acceptor", "--suite", "s.yaml"}))
	require.Error(t, cfgErr)
}
