package harness

import (
	"fmt"
	"time"

	"github.com/undo-lang/bc-acceptor/types"
)

// getResultString returns a glyphed string representing a verdict
func getResultString(status types.Status) string {
	switch status {
	case types.StatusPass:
		return "✓ pass"
	case types.StatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
