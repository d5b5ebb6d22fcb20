package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance case: a query and what translating it
// must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the SPARQL CONSTRUCT query text to translate.
	Query string `yaml:"query"`

	// Expect specifies the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation is the expected outcome of translating the query. Exactly
// one field is set.
type Expectation struct {
	// Error is the expected translation error code (e.g.
	// "BLANK_NODE_IN_OUTPUT"). Empty means translation must succeed.
	Error string `yaml:"error,omitempty"`

	// Golden indicates the successful output is compared against
	// testdata/golden/{scenario.Name}.golden.
	Golden bool `yaml:"golden,omitempty"`
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Query == "" {
		return nil, fmt.Errorf("scenario %s: query is required", path)
	}
	if s.Expect.Error == "" && !s.Expect.Golden {
		return nil, fmt.Errorf("scenario %s: expect.error or expect.golden is required", path)
	}
	if s.Expect.Error != "" && s.Expect.Golden {
		return nil, fmt.Errorf("scenario %s: expect.error and expect.golden are mutually exclusive", path)
	}

	return &s, nil
}

// LoadScenarios reads every scenario file in a directory, sorted by file
// name for deterministic execution order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
