package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undo-lang/bc-acceptor/types"
)

func TestRecordVerdict(t *testing.T) {
	RecordVerdict("run-a", "add", types.StatusPass)
	RecordVerdict("run-a", "add", types.StatusPass)
	RecordVerdict("run-a", "bad", types.StatusFail)

	count := testutil.ToFloat64(verdictsTotal.WithLabelValues("run-a", "add", "pass"))
	assert.Equal(t, float64(2), count)
	count = testutil.ToFloat64(verdictsTotal.WithLabelValues("run-a", "bad", "fail"))
	assert.Equal(t, float64(1), count)
}

func TestRecordSuiteResult(t *testing.T) {
	RecordSuiteResult("run-b", types.StatusFail, 4, 1, 1)

	require.Equal(t, float64(1), testutil.ToFloat64(suiteResults.WithLabelValues("run-b", "fail")))
	assert.Equal(t, float64(4), testutil.ToFloat64(suiteCasesTotal.WithLabelValues("run-b", "pass")))
	assert.Equal(t, float64(1), testutil.ToFloat64(suiteCasesTotal.WithLabelValues("run-b", "fail")))
	assert.Equal(t, float64(1), testutil.ToFloat64(suiteCasesTotal.WithLabelValues("run-b", "skip")))
}

func TestRecordError(t *testing.T) {
	RecordError("boom")
	assert.Equal(t, float64(1), testutil.ToFloat64(errorsTotal.WithLabelValues("boom")))
}
