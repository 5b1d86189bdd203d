package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/entailment_diff.yaml")
	require.NoError(t, err)

	assert.Equal(t, "entailment_diff", s.Name)
	assert.Equal(t, []string{"alpha beta.", "alpha gamma."}, s.Citations)
	require.NotNil(t, s.Expect)
	assert.Equal(t, "HALLUCINATION_DETECTED", s.Expect.Status)
	require.NotNil(t, s.Expect.Confidence)
	assert.Equal(t, 0.5, *s.Expect.Confidence)
	assert.Equal(t, []Pair{{A: "beta", B: "gamma"}, {A: "gamma", B: "beta"}}, s.Expect.Hallucinated)
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("answer: hello"), 0o644))

	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "name is required")
}

func TestLoadScenario_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0o644))

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRunAll_ScenarioDirectory(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 4)

	results, err := RunAll(scenarios)
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Passed, "scenario %s failed: %v", r.Scenario.Name, r.Failures)
	}
}

func TestRun_ExpectationMismatch(t *testing.T) {
	wrong := 0.9
	s := &Scenario{
		Name:      "mismatch",
		Citations: []string{"alpha beta.", "alpha gamma."},
		Answer:    "alpha beta. beta gamma.",
		Expect: &ExpectClause{
			Status:     "VALID",
			Confidence: &wrong,
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Len(t, result.Failures, 2)
}

func TestRun_ConceptLimitPropagates(t *testing.T) {
	s := &Scenario{
		Name:         "limited",
		Citations:    []string{"alpha beta.", "alpha gamma."},
		Answer:       "alpha.",
		ConceptLimit: 2,
	}

	_, err := Run(s)
	assert.Error(t, err)
}

func TestRun_NoExpectationsAlwaysPasses(t *testing.T) {
	s := &Scenario{
		Name:      "bare",
		Citations: []string{"alpha beta."},
		Answer:    "alpha beta.",
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.NotNil(t, result.Report)
}
