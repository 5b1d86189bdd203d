// Package harness runs verification scenarios defined in YAML against
// the detector and compares their reports to declared expectations or
// golden files. Scenarios are the conformance surface: a reader can
// audit what the system claims without reading Go.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is one verification case.
type Scenario struct {
	// Name uniquely identifies this scenario; the golden file (if any)
	// lives at testdata/golden/{Name}.golden.
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Citations are the ground-truth texts; Answer is verified against
	// their pooled lattice.
	Citations []string `yaml:"citations"`
	Answer    string   `yaml:"answer"`

	// ConceptLimit overrides the generation ceiling when positive.
	ConceptLimit int `yaml:"concept_limit,omitempty"`

	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause declares the assertions a scenario run must satisfy.
// Nil fields are not checked.
type ExpectClause struct {
	Status       string   `yaml:"status,omitempty"`
	Confidence   *float64 `yaml:"confidence,omitempty"`
	Hallucinated []Pair   `yaml:"hallucinated,omitempty"`
	WarningCount *int     `yaml:"warning_count,omitempty"`
}

// Pair names one expected invented relationship.
type Pair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// LoadScenario parses a single YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	return &s, nil
}

// LoadScenarios parses every *.yaml file in a directory, sorted by
// filename for deterministic ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
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
