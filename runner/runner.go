// Package runner drives the suite: it resolves each case's dependencies,
// launches the external bytecode tool, and evaluates verdicts.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/undo-lang/bc-acceptor/logging"
	"github.com/undo-lang/bc-acceptor/metrics"
	"github.com/undo-lang/bc-acceptor/registry"
	"github.com/undo-lang/bc-acceptor/types"
)

// CaseRun pairs a case with its verdict and, for executed cases, the
// drained process result.
type CaseRun struct {
	Case     types.TestCase
	Verdict  types.Verdict
	Duration time.Duration

	// Result is nil for skipped cases and launch failures.
	Result *types.CaseResult
}

// SuiteResult captures the complete outcome of one suite run
type SuiteResult struct {
	RunID    string
	Cases    []*CaseRun // declaration order
	Status   types.Status
	Duration time.Duration
	Stats    Stats

	// LogDir is the directory this run's case logs were written to;
	// empty when file logging is disabled.
	LogDir string
}

// Stats tracks verdict counts for a run
type Stats struct {
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

// String renders a one-line human-readable summary of the run.
func (r *SuiteResult) String() string {
	return fmt.Sprintf("Suite run %s: %d passed, %d failed, %d skipped (%d total) in %.1fs [%s]",
		r.RunID, r.Stats.Passed, r.Stats.Failed, r.Stats.Skipped, r.Stats.Total,
		r.Duration.Seconds(), r.Status)
}

// SuiteRunner defines the interface for running the loaded suite
type SuiteRunner interface {
	// RunSuite executes every case in declaration order, one at a time,
	// and aggregates their verdicts.
	RunSuite(ctx context.Context) (*SuiteResult, error)

	// RunCase executes a single case and returns its record.
	RunCase(ctx context.Context, tc types.TestCase) *CaseRun
}

// runner struct implements the SuiteRunner interface
type runner struct {
	registry  *registry.Registry
	cases     []types.TestCase
	testDir   string
	logDir    string
	log       log.Logger
	executor  CaseExecutor
	evaluator *outcomeEvaluator
	tracer    trace.Tracer
}

// Config holds configuration for creating a new suite runner
type Config struct {
	Registry   *registry.Registry
	TestDir    string
	ToolBinary string
	Timeout    time.Duration
	Log        log.Logger
	LogDir     string // optional; when set, per-case logs are persisted under it

	// Executor overrides the default process executor. Used in tests.
	Executor CaseExecutor
}

// NewSuiteRunner creates a new suite runner instance
func NewSuiteRunner(cfg Config) (SuiteRunner, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.TestDir == "" {
		return nil, fmt.Errorf("test directory is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	executor := cfg.Executor
	if executor == nil {
		var err error
		executor, err = NewCaseExecutor(ExecutorConfig{
			TestDir:    cfg.TestDir,
			ToolBinary: cfg.ToolBinary,
			Timeout:    cfg.Timeout,
			Log:        cfg.Log,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create case executor: %w", err)
		}
	}

	return &runner{
		registry:  cfg.Registry,
		cases:     cfg.Registry.Cases(),
		testDir:   cfg.TestDir,
		logDir:    cfg.LogDir,
		log:       cfg.Log,
		executor:  executor,
		evaluator: newOutcomeEvaluator(cfg.TestDir),
		tracer:    otel.Tracer("bc-acceptor/runner"),
	}, nil
}

// RunSuite iterates the cases strictly in declaration order; the next
// case does not start until the previous one has been evaluated. Later
// cases may consume earlier cases' artifacts through the filesystem, so
// sequential execution is the ordering guarantee.
func (r *runner) RunSuite(ctx context.Context) (*SuiteResult, error) {
	runID := uuid.New().String()
	result := &SuiteResult{
		RunID:  runID,
		Status: types.StatusPass,
	}
	result.Stats.StartTime = time.Now()

	ctx, span := r.tracer.Start(ctx, "suite run",
		trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	var fileLogger *logging.FileLogger
	if r.logDir != "" {
		var err error
		fileLogger, err = logging.NewFileLogger(r.logDir, runID)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		result.LogDir = fileLogger.RunDir()
	}

	r.log.Info("Running suite", "run_id", runID, "cases", len(r.cases))

	for _, tc := range r.cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("suite run interrupted: %w", err)
		}

		run := r.RunCase(ctx, tc)
		result.Cases = append(result.Cases, run)

		result.Stats.Total++
		switch run.Verdict.Status {
		case types.StatusPass:
			result.Stats.Passed++
		case types.StatusFail:
			result.Stats.Failed++
			result.Status = types.StatusFail
		case types.StatusSkip:
			result.Stats.Skipped++
		}

		metrics.RecordVerdict(runID, tc.Name, run.Verdict.Status)
		if fileLogger != nil {
			if err := fileLogger.LogCase(tc.Name, run.Verdict, run.Result); err != nil {
				r.log.Error("Failed to persist case log", "case", tc.Name, "error", err)
			}
		}
	}

	result.Stats.EndTime = time.Now()
	result.Duration = result.Stats.EndTime.Sub(result.Stats.StartTime)

	metrics.RecordSuiteResult(runID, result.Status, result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped)
	span.SetAttributes(attribute.String("status", string(result.Status)))

	if fileLogger != nil {
		if err := fileLogger.WriteSummary(result.String() + "\n"); err != nil {
			r.log.Error("Failed to persist run summary", "error", err)
		}
	}

	r.log.Info("Suite run complete",
		"run_id", runID,
		"status", result.Status,
		"passed", result.Stats.Passed,
		"failed", result.Stats.Failed,
		"skipped", result.Stats.Skipped)

	return result, nil
}

// RunCase applies the skip policy, then resolves, launches, and
// evaluates the case. Every per-case error is converted into a fail
// verdict at this boundary; nothing here aborts the suite.
func (r *runner) RunCase(ctx context.Context, tc types.TestCase) *CaseRun {
	ctx, span := r.tracer.Start(ctx, "case "+tc.Name)
	defer span.End()

	run := &CaseRun{Case: tc}

	if tc.Skip.Set {
		run.Verdict = types.SkipVerdict(tc.Skip.ReasonOrDefault())
		span.SetAttributes(attribute.String("verdict", string(types.StatusSkip)))
		r.log.Info("Case skipped", "case", tc.Name, "reason", run.Verdict.Reason)
		return run
	}

	r.log.Info("Running case", "case", tc.Name, "is_error", tc.ExpectError, "deps", len(tc.Dependencies))

	start := time.Now()
	result, err := r.executor.Execute(ctx, tc)
	run.Duration = time.Since(start)

	if err != nil {
		run.Verdict = types.Fail(err.Error())
		metrics.RecordError("case execution")
	} else {
		run.Result = result
		run.Verdict = r.evaluator.Evaluate(tc, result)
	}

	span.SetAttributes(attribute.String("verdict", string(run.Verdict.Status)))
	if run.Verdict.Failed() {
		r.log.Warn("Case failed", "case", tc.Name, "diagnostic", run.Verdict.Reason)
	} else {
		r.log.Info("Case passed", "case", tc.Name, "duration", run.Duration)
	}

	return run
}
