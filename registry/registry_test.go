package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undo-lang/bc-acceptor/types"
)

func writeSuite(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestRegistryLoading(t *testing.T) {
	validSuite := `
cases:
  - name: lib
  - name: uses_lib
    dependencies: [lib]
  - name: div_by_zero
    is_error: true
  - name: skipped_feature
    skip: "not implemented"
`

	t.Run("suite loading", func(t *testing.T) {
		tests := []struct {
			name    string
			cfg     Config
			wantErr bool
		}{
			{
				name:    "valid suite file",
				cfg:     Config{SuiteFile: writeSuite(t, validSuite)},
				wantErr: false,
			},
			{
				name:    "missing suite file",
				cfg:     Config{SuiteFile: "nonexistent.yaml"},
				wantErr: true,
			},
			{
				name:    "empty path",
				cfg:     Config{},
				wantErr: true,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				reg, err := NewRegistry(tt.cfg)
				if tt.wantErr {
					require.Error(t, err)
					return
				}
				require.NoError(t, err)
				require.NotNil(t, reg)
			})
		}
	})

	t.Run("declaration order preserved", func(t *testing.T) {
		reg, err := NewRegistry(Config{SuiteFile: writeSuite(t, validSuite)})
		require.NoError(t, err)

		cases := reg.Cases()
		require.Len(t, cases, 4)
		assert.Equal(t, "lib", cases[0].Name)
		assert.Equal(t, "uses_lib", cases[1].Name)
		assert.Equal(t, "div_by_zero", cases[2].Name)
		assert.Equal(t, "skipped_feature", cases[3].Name)
	})

	t.Run("records normalized", func(t *testing.T) {
		reg, err := NewRegistry(Config{SuiteFile: writeSuite(t, validSuite)})
		require.NoError(t, err)

		cases := reg.Cases()
		assert.False(t, cases[0].ExpectError)
		assert.Empty(t, cases[0].Dependencies)
		assert.Equal(t, []string{"lib"}, cases[1].Dependencies)
		assert.True(t, cases[2].ExpectError)
		assert.True(t, cases[3].Skip.Set)
		assert.Equal(t, "not implemented", cases[3].Skip.Reason)
	})

	t.Run("case lookup", func(t *testing.T) {
		reg, err := NewRegistry(Config{SuiteFile: writeSuite(t, validSuite)})
		require.NoError(t, err)

		tc, ok := reg.Case("div_by_zero")
		require.True(t, ok)
		assert.True(t, tc.ExpectError)

		_, ok = reg.Case("unknown")
		assert.False(t, ok)
	})
}

func TestRegistryMalformedSpec(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "cases: [unterminated",
		},
		{
			name: "missing name field",
			doc: `
cases:
  - name: add
  - is_error: true
`,
		},
		{
			name: "duplicate case name",
			doc: `
cases:
  - name: add
  - name: add
`,
		},
		{
			name: "no cases",
			doc:  `cases: []`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(Config{SuiteFile: writeSuite(t, tt.doc)})
			require.Error(t, err)

			var malformed *MalformedSpecError
			require.ErrorAs(t, err, &malformed)
			assert.Contains(t, malformed.Error(), "malformed suite descriptor")
		})
	}
}

func TestRegistryCasesReturnsCopy(t *testing.T) {
	reg, err := NewRegistry(Config{SuiteFile: writeSuite(t, "cases:\n  - name: add\n")})
	require.NoError(t, err)

	cases := reg.Cases()
	cases[0] = types.TestCase{Name: "mutated"}

	fresh := reg.Cases()
	assert.Equal(t, "add", fresh[0].Name)
}
