package runner

import (
	"fmt"
	"os"
	"strings"

	"github.com/undo-lang/bc-acceptor/types"
)

// outcomeEvaluator turns a drained CaseResult into a verdict by comparing
// it against the case's pre-recorded expected output.
type outcomeEvaluator struct {
	testDir string
}

func newOutcomeEvaluator(testDir string) *outcomeEvaluator {
	return &outcomeEvaluator{testDir: testDir}
}

// Evaluate computes the verdict for a finished invocation.
//
// Error-expecting cases must exit non-zero and their stderr must contain
// the expected pattern as a substring; error wording varies more than
// program output, so the match is intentionally loose. Regular cases must
// exit zero and their stdout must equal the expected output byte-for-byte,
// including the presence or absence of a trailing newline.
func (e *outcomeEvaluator) Evaluate(tc types.TestCase, result *types.CaseResult) types.Verdict {
	expected, err := os.ReadFile(expectedFile(e.testDir, tc.Name))
	if err != nil {
		return types.Fail(fmt.Sprintf("cannot read expected output: %v", err))
	}

	if result.TimedOut {
		return types.Fail("invocation timed out before completing")
	}

	if tc.ExpectError {
		return evaluateExpectedError(string(expected), result)
	}
	return evaluateExpectedOutput(string(expected), result)
}

func evaluateExpectedError(expected string, result *types.CaseResult) types.Verdict {
	if result.ExitCode == 0 {
		return types.Fail("expected error, got success")
	}

	pattern := strings.TrimSpace(expected)
	if !strings.Contains(result.Stderr, pattern) {
		return types.Fail(fmt.Sprintf("stderr did not match expected error pattern %q:\n%s",
			pattern, prefixLines(result.Stderr)))
	}
	return types.Pass()
}

func evaluateExpectedOutput(expected string, result *types.CaseResult) types.Verdict {
	if result.ExitCode != 0 {
		return types.Fail(fmt.Sprintf("tool exited with code %d:\n%s",
			result.ExitCode, prefixLines(result.Stderr)))
	}

	actual := result.Stdout()
	if actual != expected {
		return types.Fail("output mismatch:\n" + renderDiff(expected, actual))
	}
	return types.Pass()
}

// prefixLines marks each stderr line for readability inside a diagnostic.
func prefixLines(s string) string {
	if s == "" {
		return "  stderr| (empty)"
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  stderr| " + l
	}
	return strings.Join(lines, "\n")
}

// renderDiff produces a line-oriented expected/got diff for output
// mismatch diagnostics.
func renderDiff(expected, actual string) string {
	expLines := strings.Split(expected, "\n")
	actLines := strings.Split(actual, "\n")

	var b strings.Builder
	b.WriteString("  --- expected\n  +++ actual\n")

	n := len(expLines)
	if len(actLines) > n {
		n = len(actLines)
	}
	for i := 0; i < n; i++ {
		var exp, act string
		hasExp, hasAct := i < len(expLines), i < len(actLines)
		if hasExp {
			exp = expLines[i]
		}
		if hasAct {
			act = actLines[i]
		}
		switch {
		case hasExp && hasAct && exp == act:
			fmt.Fprintf(&b, "    %s\n", exp)
		default:
			if hasExp {
				fmt.Fprintf(&b, "  - %s\n", exp)
			}
			if hasAct {
				fmt.Fprintf(&b, "  + %s\n", act)
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
