package harness

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/undo-lang/bc-acceptor/flags"
)

// Config holds the application configuration
type Config struct {
	SuiteFile   string
	TestDir     string
	ToolBinary  string
	Timeout     time.Duration // Per-invocation timeout; zero disables it
	RunInterval time.Duration // Interval between suite runs
	RunOnce     bool          // Indicates if the harness should exit after one suite run
	LogDir      string        // Directory to store per-run case logs
	Log         log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger, suiteFile string) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}
	if suiteFile == "" {
		return nil, errors.New("suite descriptor file is required")
	}

	absSuiteFile, err := filepath.Abs(suiteFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for suite file '%s': %w", suiteFile, err)
	}

	// The artifact directory defaults to wherever the descriptor lives.
	testDir := ctx.String(flags.TestDir.Name)
	if testDir == "" {
		testDir = filepath.Dir(absSuiteFile)
	}
	absTestDir, err := filepath.Abs(testDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for test directory '%s': %w", testDir, err)
	}

	logDir := ctx.String(flags.LogDir.Name)
	if logDir == "" {
		logDir = "logs"
	}
	absLogDir, err := filepath.Abs(logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for log directory '%s': %w", logDir, err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)

	return &Config{
		SuiteFile:   absSuiteFile,
		TestDir:     absTestDir,
		ToolBinary:  ctx.String(flags.ToolBinary.Name),
		Timeout:     ctx.Duration(flags.Timeout.Name),
		RunInterval: runInterval,
		RunOnce:     runInterval == 0,
		LogDir:      absLogDir,
		Log:         logger,
	}, nil
}
