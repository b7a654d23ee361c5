package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/undo-lang/bc-acceptor/types"
)

// RunSubcommand is the tool subcommand that executes a bytecode module.
const RunSubcommand = "run"

// DefaultToolBinary is used when no tool binary is configured.
const DefaultToolBinary = "undo"

// LaunchFailureError reports that the external tool process could not be
// started at all (binary not found, permission denied). This is distinct
// from a non-zero exit code, which is a normal, possibly expected outcome.
type LaunchFailureError struct {
	Tool string
	Err  error
}

func (e *LaunchFailureError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Tool, e.Err)
}

func (e *LaunchFailureError) Unwrap() error {
	return e.Err
}

var _ CaseExecutor = (*caseExecutor)(nil)

// CaseExecutor launches one fresh tool process per case and yields the
// fully drained result once the process has exited.
type CaseExecutor interface {
	// Execute invokes `<tool> run <artifact> [dep-artifacts...]` and blocks
	// until the process exits and both streams are drained.
	Execute(ctx context.Context, tc types.TestCase) (*types.CaseResult, error)
}

// caseExecutor implements CaseExecutor
type caseExecutor struct {
	testDir    string
	toolBinary string
	timeout    time.Duration
	cmdBuilder func(ctx context.Context, name string, arg ...string) *exec.Cmd
	log        log.Logger
}

// ExecutorConfig holds configuration for creating a new case executor
type ExecutorConfig struct {
	TestDir    string
	ToolBinary string
	Timeout    time.Duration // zero disables the per-process timeout
	Log        log.Logger

	// CmdBuilder, when set, replaces exec.CommandContext. Used in tests.
	CmdBuilder func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewCaseExecutor creates a new case executor instance
func NewCaseExecutor(cfg ExecutorConfig) (CaseExecutor, error) {
	if cfg.TestDir == "" {
		return nil, fmt.Errorf("test directory is required")
	}
	if cfg.ToolBinary == "" {
		cfg.ToolBinary = DefaultToolBinary
	}
	if cfg.CmdBuilder == nil {
		cfg.CmdBuilder = exec.CommandContext
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}

	return &caseExecutor{
		testDir:    cfg.TestDir,
		toolBinary: cfg.ToolBinary,
		timeout:    cfg.Timeout,
		cmdBuilder: cfg.CmdBuilder,
		log:        cfg.Log,
	}, nil
}

// Execute runs a single case's tool invocation. Both output streams are
// drained concurrently with the process and with each other; a process
// that fills one pipe buffer can never deadlock against a harness blocked
// on the other.
func (e *caseExecutor) Execute(ctx context.Context, tc types.TestCase) (*types.CaseResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	cancel := func() {}
	if e.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	args := append([]string{RunSubcommand}, resolveArguments(e.testDir, tc)...)
	e.log.Debug("Launching tool", "tool", e.toolBinary, "args", strings.Join(args, " "))

	cmd := e.cmdBuilder(ctx, e.toolBinary, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &LaunchFailureError{Tool: e.toolBinary, Err: err}
	}

	result := &types.CaseResult{}

	var wg sync.WaitGroup
	wg.Add(2)

	// stdout is consumed incrementally and split into lines in arrival
	// order. A partial final line without a terminator is still captured.
	go func() {
		defer wg.Done()
		br := bufio.NewReader(stdout)
		for {
			line, err := br.ReadString('\n')
			if len(line) > 0 {
				if strings.HasSuffix(line, "\n") {
					result.StdoutLines = append(result.StdoutLines, strings.TrimSuffix(line, "\n"))
					result.TrailingNewline = true
				} else {
					result.StdoutLines = append(result.StdoutLines, line)
					result.TrailingNewline = false
				}
			}
			if err != nil {
				return
			}
		}
	}()

	// stderr is concatenated without line splitting.
	go func() {
		defer wg.Done()
		b, _ := io.ReadAll(stderr)
		result.Stderr = string(b)
	}()

	// Both drains must finish before Wait closes the pipes.
	wg.Wait()
	waitErr := cmd.Wait()
	duration := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
	}

	switch {
	case waitErr == nil:
		result.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("failed to wait for %s: %w", e.toolBinary, waitErr)
		}
	}

	e.log.Debug("Tool exited",
		"case", tc.Name,
		"exitCode", result.ExitCode,
		"duration", duration,
		"stdoutLines", len(result.StdoutLines),
		"timedOut", result.TimedOut)

	return result, nil
}
