// Package detector renders a verification diff as an actionable report:
// a status, a confidence score, one finding per invented relationship,
// and advisory structural warnings.
package detector

import (
	"fmt"
	"log/slog"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/verifier"
)

// Status classifies a verification outcome.
type Status string

const (
	StatusValid         Status = "VALID"
	StatusHallucination Status = "HALLUCINATION_DETECTED"
)

// Severity grades a finding. Every invented relationship is HIGH since
// the structural contract gives no basis for ranking one pair above
// another.
type Severity string

const SeverityHigh Severity = "HIGH"

// Finding is one itemized problem in an answer.
type Finding struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Report is the presentation-layer view of a verification result.
// Warnings are advisory and never change the status.
type Report struct {
	Status     Status    `json:"status"`
	Confidence float64   `json:"confidence"`
	Findings   []Finding `json:"findings"`
	Warnings   []string  `json:"warnings"`

	Result *verifier.Result `json:"result"`
}

// Detector wraps a Verifier into report form.
type Detector struct {
	verifier *verifier.Verifier
	logger   *slog.Logger
}

// New builds a Detector. A nil verifier gets the default configuration.
func New(v *verifier.Verifier) *Detector {
	if v == nil {
		v = verifier.New()
	}
	return &Detector{verifier: v, logger: slog.Default()}
}

// WithLogger sets the structured logger and returns the detector.
func (d *Detector) WithLogger(l *slog.Logger) *Detector {
	d.logger = l
	return d
}

// Detect verifies the answer against the citations and renders the
// outcome. The error path is the verifier's: only a concept ceiling
// breach fails.
func (d *Detector) Detect(citations []string, answer string) (*Report, error) {
	res, err := d.verifier.Verify(citations, answer)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Status:     StatusValid,
		Confidence: res.Confidence,
		Findings:   []Finding{},
		Warnings:   []string{},
		Result:     res,
	}

	for _, rel := range res.Hallucinated {
		report.Findings = append(report.Findings, Finding{
			Type:        "invented_relationship",
			Description: fmt.Sprintf("invented relationship: %s", rel),
			Severity:    SeverityHigh,
		})
	}
	if len(report.Findings) > 0 {
		report.Status = StatusHallucination
	}

	// High cycle rank relative to the ground truth means the answer
	// interlinks terms far more densely than the citations do, even
	// when no single pair is invented.
	if res.Answer.Beta1 > 2*res.Truth.Beta1 {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"answer lattice cycle rank %d exceeds twice the ground truth's %d: possible structural overgeneralization",
			res.Answer.Beta1, res.Truth.Beta1))
	}

	d.logger.Info("hallucination check",
		"status", report.Status,
		"confidence", report.Confidence,
		"findings", len(report.Findings),
		"warnings", len(report.Warnings),
	)
	return report, nil
}
