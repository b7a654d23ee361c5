package types

import "fmt"

// SuiteConfig is the parsed shape of a suite descriptor document: an
// ordered collection of case records.
type SuiteConfig struct {
	Cases []TestCase `yaml:"cases"`
}

// Validate checks the structural invariants of a loaded descriptor.
// Declaration order is never altered here.
func (c *SuiteConfig) Validate() error {
	if len(c.Cases) == 0 {
		return fmt.Errorf("suite descriptor contains no cases")
	}
	seen := make(map[string]int, len(c.Cases))
	for i, tc := range c.Cases {
		if tc.Name == "" {
			return fmt.Errorf("case at index %d is missing the mandatory name field", i)
		}
		if prev, ok := seen[tc.Name]; ok {
			return fmt.Errorf("duplicate case name %q (indices %d and %d)", tc.Name, prev, i)
		}
		seen[tc.Name] = i
		for _, dep := range tc.Dependencies {
			if dep == "" {
				return fmt.Errorf("case %q declares an empty dependency name", tc.Name)
			}
		}
	}
	return nil
}
