package types

// Status represents the possible outcomes of evaluating a case
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Verdict is the tri-state result of one case: Pass, Fail with a
// diagnostic, or Skip with a reason. It is produced once per case and
// consumed only by the suite aggregator.
type Verdict struct {
	Status Status

	// Reason carries the failure diagnostic or the skip reason; empty for
	// passing cases.
	Reason string
}

func Pass() Verdict {
	return Verdict{Status: StatusPass}
}

func Fail(diagnostic string) Verdict {
	return Verdict{Status: StatusFail, Reason: diagnostic}
}

func SkipVerdict(reason string) Verdict {
	return Verdict{Status: StatusSkip, Reason: reason}
}

func (v Verdict) Passed() bool  { return v.Status == StatusPass }
func (v Verdict) Failed() bool  { return v.Status == StatusFail }
func (v Verdict) Skipped() bool { return v.Status == StatusSkip }
