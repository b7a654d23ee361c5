// Package exitcodes defines the standard exit codes used by bc-acceptor.
package exitcodes

// Exit code constants used by the harness process itself:
//
// * Success (0): every non-skipped case passed
// * TestFailure (1): one or more cases produced a fail verdict
// * RuntimeErr (2): malformed suite descriptor, panics or other harness errors
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
