// Package registry loads and validates the suite descriptor: the ordered
// collection of test cases the harness runs against the bytecode tool.
package registry

import (
	"fmt"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/undo-lang/bc-acceptor/types"
)

// MalformedSpecError reports a suite descriptor that could not be parsed
// or that violates a structural invariant. It is fatal to the whole run;
// no cases execute.
type MalformedSpecError struct {
	File string
	Err  error
}

func (e *MalformedSpecError) Error() string {
	return fmt.Sprintf("malformed suite descriptor %s: %v", e.File, e.Err)
}

func (e *MalformedSpecError) Unwrap() error {
	return e.Err
}

// Registry holds the loaded suite and hands out cases in declaration order
type Registry struct {
	config Config
	cases  []types.TestCase
	mu     sync.RWMutex
}

// Config contains registry configuration
type Config struct {
	Log       log.Logger
	SuiteFile string
}

// NewRegistry loads the suite descriptor and returns a registry instance.
// A load or validation failure is reported as a MalformedSpecError.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.SuiteFile == "" {
		return nil, fmt.Errorf("suite descriptor file is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{config: cfg}
	if err := r.loadCases(cfg.SuiteFile); err != nil {
		return nil, err
	}

	cfg.Log.Debug("Registry loaded", "suite", cfg.SuiteFile, "len(cases)", len(r.cases))

	return r, nil
}

// loadCases reads the descriptor document and normalizes it into the
// canonical in-memory form.
func (r *Registry) loadCases(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return &MalformedSpecError{File: path, Err: err}
	}

	var suite types.SuiteConfig
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return &MalformedSpecError{File: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	if err := suite.Validate(); err != nil {
		return &MalformedSpecError{File: path, Err: err}
	}

	r.cases = suite.Cases
	return nil
}

// Cases returns the suite's cases in declaration order.
func (r *Registry) Cases() []types.TestCase {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.TestCase, len(r.cases))
	copy(out, r.cases)
	return out
}

// Case looks up a single case by name.
func (r *Registry) Case(name string) (types.TestCase, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tc := range r.cases {
		if tc.Name == name {
			return tc, true
		}
	}
	return types.TestCase{}, false
}
