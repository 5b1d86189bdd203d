package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/detector"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/verifier"
)

// confidenceTolerance absorbs float formatting differences between the
// YAML expectation and the computed score.
const confidenceTolerance = 1e-9

// Result is one scenario execution with its pass/fail verdict.
type Result struct {
	Scenario *Scenario
	Report   *detector.Report
	Passed   bool
	Failures []string
}

// Run executes a scenario against a fresh detector and evaluates its
// expectations. Scenario runs are isolated; nothing carries over.
func Run(s *Scenario) (*Result, error) {
	opts := []verifier.Option{
		verifier.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if s.ConceptLimit > 0 {
		opts = append(opts, verifier.WithConceptLimit(s.ConceptLimit))
	}
	d := detector.New(verifier.New(opts...)).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := d.Detect(s.Citations, s.Answer)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result := &Result{Scenario: s, Report: report, Passed: true}
	if s.Expect == nil {
		return result, nil
	}

	e := s.Expect
	if e.Status != "" && string(report.Status) != e.Status {
		result.fail("status: want %s, got %s", e.Status, report.Status)
	}
	if e.Confidence != nil && math.Abs(report.Confidence-*e.Confidence) > confidenceTolerance {
		result.fail("confidence: want %v, got %v", *e.Confidence, report.Confidence)
	}
	if e.Hallucinated != nil {
		got := report.Result.Hallucinated
		if len(got) != len(e.Hallucinated) {
			result.fail("hallucinated: want %d pairs, got %d", len(e.Hallucinated), len(got))
		} else {
			for i, p := range e.Hallucinated {
				if got[i].A != p.A || got[i].B != p.B {
					result.fail("hallucinated[%d]: want %s->%s, got %s->%s",
						i, p.A, p.B, got[i].A, got[i].B)
				}
			}
		}
	}
	if e.WarningCount != nil && len(report.Warnings) != *e.WarningCount {
		result.fail("warnings: want %d, got %d", *e.WarningCount, len(report.Warnings))
	}
	return result, nil
}

func (r *Result) fail(format string, args ...any) {
	r.Passed = false
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// RunAll executes every scenario and returns the results in order.
// Execution stops at the first scenario that errors outright.
func RunAll(scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, 0, len(scenarios))
	for _, s := range scenarios {
		r, err := Run(s)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}
