package runner

import (
	"path/filepath"

	"github.com/undo-lang/bc-acceptor/types"
)

// caseArtifact returns the path of a case's own compiled artifact inside
// the test directory.
func caseArtifact(testDir, name string) string {
	return filepath.Join(testDir, types.ArtifactName(name))
}

// expectedFile returns the path of a case's pre-recorded expected output.
func expectedFile(testDir, name string) string {
	return filepath.Join(testDir, types.ExpectedName(name))
}

// resolveArguments expands a case into the positional file arguments of
// the tool invocation: the case's own artifact first, then each declared
// dependency's artifact in declaration order. No existence check happens
// here; a missing file surfaces when the tool runs.
func resolveArguments(testDir string, tc types.TestCase) []string {
	args := make([]string, 0, len(tc.Dependencies)+1)
	args = append(args, caseArtifact(testDir, tc.Name))
	for _, dep := range tc.Dependencies {
		args = append(args, caseArtifact(testDir, dep))
	}
	return args
}
