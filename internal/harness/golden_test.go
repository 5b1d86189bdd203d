package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGolden_EntailmentDiff(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/entailment_diff.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, s))
}

func TestGolden_NoClaims(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/no_claims.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, s))
}
