// Package harness ties the suite registry and runner together into the
// bc-acceptor service: it runs the suite (once or on an interval), prints
// the verdict table and maps the outcome to a process exit code.
package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/undo-lang/bc-acceptor/exitcodes"
	"github.com/undo-lang/bc-acceptor/registry"
	"github.com/undo-lang/bc-acceptor/runner"
	"github.com/undo-lang/bc-acceptor/types"
)

// Harness runs the bytecode acceptance suite.
type Harness struct {
	config   *Config
	version  string
	registry *registry.Registry
	runner   runner.SuiteRunner
	result   *runner.SuiteResult

	running atomic.Bool
}

func New(cfg *Config, version string) (*Harness, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	cfg.Log.Debug("Creating harness with config",
		"suite", cfg.SuiteFile,
		"testDir", cfg.TestDir,
		"tool", cfg.ToolBinary,
		"runInterval", cfg.RunInterval,
		"runOnce", cfg.RunOnce)

	reg, err := registry.NewRegistry(registry.Config{
		Log:       cfg.Log,
		SuiteFile: cfg.SuiteFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	suiteRunner, err := runner.NewSuiteRunner(runner.Config{
		Registry:   reg,
		TestDir:    cfg.TestDir,
		ToolBinary: cfg.ToolBinary,
		Timeout:    cfg.Timeout,
		Log:        cfg.Log,
		LogDir:     cfg.LogDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suite runner: %w", err)
	}

	return &Harness{
		config:   cfg,
		version:  version,
		registry: reg,
		runner:   suiteRunner,
	}, nil
}

// Run executes the suite and blocks until done. In run-once mode it
// returns after a single run, yielding a TestFailureError when any case
// failed so main can exit with the right code. In continuous mode it
// re-runs the suite every RunInterval until the context is canceled.
func (h *Harness) Run(ctx context.Context) error {
	// Panics anywhere below are runtime errors, not test failures.
	defer func() {
		if r := recover(); r != nil {
			h.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	h.running.Store(true)
	defer h.running.Store(false)

	if h.config.RunOnce {
		h.config.Log.Info("Starting bc-acceptor in run-once mode")
	} else {
		h.config.Log.Info("Starting bc-acceptor in continuous mode", "interval", h.config.RunInterval)
	}

	if err := h.runSuite(ctx); err != nil {
		h.config.Log.Error("Runtime error running suite", "error", err)
		return NewRuntimeError(err)
	}

	if h.config.RunOnce {
		if h.result.Status == types.StatusFail {
			h.config.Log.Warn("Suite run completed with failures")
			return NewTestFailureError(h.result.String())
		}
		h.config.Log.Info("Suite run completed, exiting (run-once mode)")
		return nil
	}

	for {
		select {
		case <-time.After(h.config.RunInterval):
			h.config.Log.Info("Running periodic suite")
			if err := h.runSuite(ctx); err != nil {
				h.config.Log.Error("Error running periodic suite", "error", err)
			}
		case <-ctx.Done():
			h.config.Log.Debug("Context canceled, stopping periodic suite runs")
			return nil
		}
	}
}

// Running reports whether the harness is currently executing.
func (h *Harness) Running() bool {
	return h.running.Load()
}

// Result returns the most recent suite result.
func (h *Harness) Result() *runner.SuiteResult {
	return h.result
}

// runSuite runs the whole suite once and prints the results.
func (h *Harness) runSuite(ctx context.Context) error {
	result, err := h.runner.RunSuite(ctx)
	if err != nil {
		return err
	}
	h.result = result

	fmt.Print(renderResultsTable(result))
	fmt.Println(result.String())
	if result.LogDir != "" {
		h.config.Log.Info("Case logs written", "dir", result.LogDir)
	}
	return nil
}

// renderResultsTable renders the per-case verdict table.
func renderResultsTable(result *runner.SuiteResult) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Bytecode Acceptance Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{
		"Case", "Duration", "Status", "Diagnostic",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Case", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Diagnostic", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, run := range result.Cases {
		t.AppendRow(table.Row{
			run.Case.Name,
			formatDuration(run.Duration),
			getResultString(run.Verdict.Status),
			firstLine(run.Verdict.Reason),
		})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d cases", result.Stats.Total),
		formatDuration(result.Duration),
		getResultString(result.Status),
		fmt.Sprintf("%d passed, %d failed, %d skipped",
			result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped),
	})

	return t.Render() + "\n"
}

// firstLine trims a multi-line diagnostic down to its headline for the
// table; the full text still lands in the case log file.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
