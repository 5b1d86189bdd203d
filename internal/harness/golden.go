package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/detector"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/verifier"
)

// ReportSnapshot is the golden-file shape for a scenario run. Canonical
// serialization keeps the bytes stable across runs and platforms.
type ReportSnapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Report       *detector.Report `json:"report"`
}

// RunWithGolden executes a scenario and compares its canonical report
// against testdata/golden/{scenario.Name}.golden.
//
// Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return err
	}

	snapshot := &ReportSnapshot{
		ScenarioName: s.Name,
		Report:       result.Report,
	}
	data, err := verifier.MarshalCanonical(snapshot)
	if err != nil {
		return err
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, s.Name, data)
	return nil
}
