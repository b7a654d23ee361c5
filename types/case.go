package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ArtifactSuffix is the file suffix of a compiled bytecode module.
// A case named "add" is invoked on "add.bc.json" in the test directory.
const ArtifactSuffix = ".bc.json"

// ExpectedSuffix is the file suffix of a case's pre-recorded expected
// output (or expected-error pattern for error-expecting cases).
const ExpectedSuffix = ".output"

// Skip captures the optional skip marker of a case. The descriptor allows
// either a bare boolean or a string carrying the skip reason.
type Skip struct {
	Set    bool
	Reason string
}

// UnmarshalYAML accepts `skip: true`, `skip: false` and `skip: "<reason>"`.
func (s *Skip) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("skip must be a boolean or a string, got %s", value.Tag)
	}
	switch value.Tag {
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		s.Set = b
		return nil
	case "!!str":
		s.Set = true
		s.Reason = value.Value
		return nil
	default:
		return fmt.Errorf("skip must be a boolean or a string, got %s", value.Tag)
	}
}

// ReasonOrDefault returns the recorded skip reason, falling back to a
// generic message when the descriptor only said `skip: true`.
func (s Skip) ReasonOrDefault() string {
	if s.Reason != "" {
		return s.Reason
	}
	return "skipped by suite descriptor"
}

// TestCase is one record of the suite descriptor, immutable once loaded.
type TestCase struct {
	// Name uniquely identifies the case within the suite and derives its
	// artifact and expected-output file names.
	Name string `yaml:"name"`

	// ExpectError flips the verdict logic: the invocation must exit
	// non-zero and its stderr must contain the expected pattern.
	ExpectError bool `yaml:"is_error,omitempty"`

	// Skip marks the case to be reported as skipped without launching a
	// process or resolving its dependencies.
	Skip Skip `yaml:"skip,omitempty"`

	// Dependencies lists names of other cases whose artifacts are passed
	// as additional positional arguments, in declaration order.
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// ArtifactName returns the artifact file name for a case (or dependency)
// name, without any directory component.
func ArtifactName(name string) string {
	return name + ArtifactSuffix
}

// ExpectedName returns the expected-output file name for a case name.
func ExpectedName(name string) string {
	return name + ExpectedSuffix
}

// CaseResult is the fully drained outcome of one tool invocation.
// It exists only for the duration of evaluating a single case.
type CaseResult struct {
	// StdoutLines holds the captured stdout split into lines in arrival
	// order, terminators stripped. A partial final line without a trailing
	// terminator is still captured.
	StdoutLines []string

	// TrailingNewline records whether the captured stdout ended with a
	// line terminator, so the original byte stream can be reconstructed
	// for exact comparison.
	TrailingNewline bool

	// Stderr is the concatenated error stream, not line-split.
	Stderr string

	// ExitCode is the process exit status; zero signals success by the
	// tool's convention.
	ExitCode int

	// TimedOut is set when the invocation was killed by the configured
	// per-process timeout.
	TimedOut bool
}

// Stdout reconstructs the captured stdout byte-for-byte, including the
// presence or absence of the final newline.
func (r *CaseResult) Stdout() string {
	if len(r.StdoutLines) == 0 {
		return ""
	}
	s := strings.Join(r.StdoutLines, "\n")
	if r.TrailingNewline {
		s += "\n"
	}
	return s
}
