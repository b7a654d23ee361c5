package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SuiteConfig
		wantErr string
	}{
		{
			name: "valid suite",
			cfg: SuiteConfig{Cases: []TestCase{
				{Name: "lib"},
				{Name: "uses_lib", Dependencies: []string{"lib"}},
			}},
		},
		{
			name:    "empty suite",
			cfg:     SuiteConfig{},
			wantErr: "no cases",
		},
		{
			name: "missing name",
			cfg: SuiteConfig{Cases: []TestCase{
				{Name: "add"},
				{},
			}},
			wantErr: "missing the mandatory name field",
		},
		{
			name: "duplicate name",
			cfg: SuiteConfig{Cases: []TestCase{
				{Name: "add"},
				{Name: "add"},
			}},
			wantErr: `duplicate case name "add"`,
		},
		{
			name: "empty dependency name",
			cfg: SuiteConfig{Cases: []TestCase{
				{Name: "add", Dependencies: []string{""}},
			}},
			wantErr: "empty dependency name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
