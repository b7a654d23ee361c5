// Package logging persists per-run case output under a log directory so
// failures can be inspected after the process exits.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/acarl005/stripansi"

	"github.com/undo-lang/bc-acceptor/types"
)

const (
	// RunDirectoryPrefix is the standardized prefix for run directories.
	RunDirectoryPrefix = "testrun-"

	SummaryFilename = "summary.log"
)

// FileLogger writes one log file per executed case plus a run summary
// into logs/<testrun-RUNID>/.
type FileLogger struct {
	baseDir string
	runDir  string
	mu      sync.Mutex
}

// NewFileLogger creates the run directory for this run ID.
func NewFileLogger(baseDir, runID string) (*FileLogger, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if runID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	runDir := filepath.Join(baseDir, RunDirectoryPrefix+runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory %s: %w", runDir, err)
	}

	return &FileLogger{baseDir: baseDir, runDir: runDir}, nil
}

// RunDir returns the directory all files of this run are written to.
func (l *FileLogger) RunDir() string {
	return l.runDir
}

// LogCase writes the captured streams and verdict of one case. Tool
// output is ANSI-stripped so the files stay grep-friendly. result may be
// nil for skipped cases and launch failures.
func (l *FileLogger) LogCase(caseName string, verdict types.Verdict, result *types.CaseResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "case: %s\nverdict: %s\n", caseName, verdict.Status)
	if verdict.Reason != "" {
		fmt.Fprintf(&b, "reason: %s\n", verdict.Reason)
	}
	if result != nil {
		fmt.Fprintf(&b, "exit code: %d\n", result.ExitCode)
		if result.TimedOut {
			fmt.Fprintf(&b, "timed out: true\n")
		}
		fmt.Fprintf(&b, "\n--- stdout ---\n%s", stripansi.Strip(result.Stdout()))
		fmt.Fprintf(&b, "\n--- stderr ---\n%s\n", stripansi.Strip(result.Stderr))
	}

	path := filepath.Join(l.runDir, caseName+".log")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write case log %s: %w", path, err)
	}
	return nil
}

// WriteSummary persists the run summary text.
func (l *FileLogger) WriteSummary(summary string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := filepath.Join(l.runDir, SummaryFilename)
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}
