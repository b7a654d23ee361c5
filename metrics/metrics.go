// Package metrics records suite and case verdicts for prometheus scraping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/undo-lang/bc-acceptor/types"
)

const (
	MetricsNamespace = "bc_acceptor"
)

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of harness errors",
	}, []string{
		"error",
	})

	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "verdicts_total",
		Help:      "Count of case verdicts",
	}, []string{
		"run_id",
		"case",
		"verdict",
	})

	suiteResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_results",
		Help:      "Result of the latest suite run (1 = run finished with this result)",
	}, []string{
		"run_id",
		"result",
	})

	suiteCasesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_cases_total",
		Help:      "Verdict counts of the latest suite run",
	}, []string{
		"run_id",
		"verdict",
	})
)

// RecordVerdict records the verdict of a single case.
func RecordVerdict(runID, caseName string, status types.Status) {
	verdictsTotal.WithLabelValues(runID, caseName, string(status)).Inc()
}

// RecordSuiteResult records the aggregate outcome of a suite run.
func RecordSuiteResult(runID string, status types.Status, passed, failed, skipped int) {
	suiteResults.WithLabelValues(runID, string(status)).Set(1)
	suiteCasesTotal.WithLabelValues(runID, string(types.StatusPass)).Set(float64(passed))
	suiteCasesTotal.WithLabelValues(runID, string(types.StatusFail)).Set(float64(failed))
	suiteCasesTotal.WithLabelValues(runID, string(types.StatusSkip)).Set(float64(skipped))
}

// RecordError counts a harness-level error.
func RecordError(name string) {
	errorsTotal.WithLabelValues(name).Inc()
}
