package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSkipUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantSet    bool
		wantReason string
		wantErr    bool
	}{
		{
			name:    "absent defaults to not set",
			doc:     `name: add`,
			wantSet: false,
		},
		{
			name:    "boolean true",
			doc:     "name: add\nskip: true",
			wantSet: true,
		},
		{
			name:    "boolean false",
			doc:     "name: add\nskip: false",
			wantSet: false,
		},
		{
			name:       "string reason",
			doc:        "name: add\nskip: \"not implemented\"",
			wantSet:    true,
			wantReason: "not implemented",
		},
		{
			name:    "sequence rejected",
			doc:     "name: add\nskip: [1, 2]",
			wantErr: true,
		},
		{
			name:    "integer rejected",
			doc:     "name: add\nskip: 3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tc TestCase
			err := yaml.Unmarshal([]byte(tt.doc), &tc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, tc.Skip.Set)
			assert.Equal(t, tt.wantReason, tc.Skip.Reason)
		})
	}
}

func TestSkipReasonOrDefault(t *testing.T) {
	assert.Equal(t, "not implemented", Skip{Set: true, Reason: "not implemented"}.ReasonOrDefault())
	assert.Equal(t, "skipped by suite descriptor", Skip{Set: true}.ReasonOrDefault())
}

func TestTestCaseDefaults(t *testing.T) {
	var tc TestCase
	require.NoError(t, yaml.Unmarshal([]byte(`name: add`), &tc))
	assert.Equal(t, "add", tc.Name)
	assert.False(t, tc.ExpectError)
	assert.False(t, tc.Skip.Set)
	assert.Empty(t, tc.Dependencies)
}

func TestArtifactNaming(t *testing.T) {
	assert.Equal(t, "add.bc.json", ArtifactName("add"))
	assert.Equal(t, "add.output", ExpectedName("add"))
}

func TestCaseResultStdout(t *testing.T) {
	tests := []struct {
		name   string
		result CaseResult
		want   string
	}{
		{
			name:   "empty output",
			result: CaseResult{},
			want:   "",
		},
		{
			name:   "single line with terminator",
			result: CaseResult{StdoutLines: []string{"3"}, TrailingNewline: true},
			want:   "3\n",
		},
		{
			name:   "partial final line",
			result: CaseResult{StdoutLines: []string{"a", "b"}, TrailingNewline: false},
			want:   "a\nb",
		},
		{
			name:   "blank line only",
			result: CaseResult{StdoutLines: []string{""}, TrailingNewline: true},
			want:   "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Stdout())
		})
	}
}

func TestVerdictHelpers(t *testing.T) {
	assert.True(t, Pass().Passed())
	assert.True(t, Fail("boom").Failed())
	assert.Equal(t, "boom", Fail("boom").Reason)
	v := SkipVerdict("not implemented")
	assert.True(t, v.Skipped())
	assert.Equal(t, "not implemented", v.Reason)
}
