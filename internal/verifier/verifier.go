package verifier

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/fca"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/lattice"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/textctx"
)

// Result is the outcome of comparing an answer against its citations.
type Result struct {
	IsValid      bool           `json:"is_valid"`
	Confidence   float64        `json:"confidence"`
	Hallucinated []Relationship `json:"hallucinated"`

	TruthRelationships  int `json:"truth_relationships"`
	AnswerRelationships int `json:"answer_relationships"`

	Truth  lattice.Metrics `json:"truth_lattice"`
	Answer lattice.Metrics `json:"answer_lattice"`
}

// Verifier compares answer texts against citation texts.
// The zero configuration uses the plain text adapter and the default
// concept ceiling; both are overridable per instance.
type Verifier struct {
	adapter textctx.Adapter
	limit   int
	logger  *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithAdapter replaces the text-to-context adapter.
func WithAdapter(a textctx.Adapter) Option {
	return func(v *Verifier) { v.adapter = a }
}

// WithConceptLimit caps lattice size for both sides of the comparison.
func WithConceptLimit(n int) Option {
	return func(v *Verifier) { v.limit = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// New returns a Verifier with the given options applied.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		adapter: textctx.FromText,
		limit:   fca.DefaultConceptLimit,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify builds ground-truth and answer lattices and diffs their
// relationship sets. Citations are pooled into a single ground-truth
// text. An answer with no relationships is trivially valid with full
// confidence.
//
// Verify fails only when concept generation on either side exceeds the
// configured ceiling; fca.IsLimitError distinguishes that case.
func (v *Verifier) Verify(citations []string, answer string) (*Result, error) {
	truthLat, err := v.buildLattice(strings.Join(citations, " "))
	if err != nil {
		return nil, fmt.Errorf("ground truth lattice: %w", err)
	}
	answerLat, err := v.buildLattice(answer)
	if err != nil {
		return nil, fmt.Errorf("answer lattice: %w", err)
	}

	truthRels := ExtractRelationships(truthLat)
	answerRels := ExtractRelationships(answerLat)

	known := make(map[Relationship]struct{}, len(truthRels))
	for _, r := range truthRels {
		known[r] = struct{}{}
	}

	// Pairs over vocabulary the citations never mention are excluded,
	// not flagged. Flagging them would punish every novel word rather
	// than novel claims about known terms.
	vocab := truthLat.Context()
	hallucinated := []Relationship{}
	for _, r := range answerRels {
		if _, ok := known[r]; ok {
			continue
		}
		if !vocab.HasAttribute(r.A) || !vocab.HasAttribute(r.B) {
			continue
		}
		hallucinated = append(hallucinated, r)
	}

	confidence := 1.0
	if len(answerRels) > 0 {
		confidence = 1.0 - float64(len(hallucinated))/float64(len(answerRels))
	}

	res := &Result{
		IsValid:             len(hallucinated) == 0,
		Confidence:          confidence,
		Hallucinated:        hallucinated,
		TruthRelationships:  len(truthRels),
		AnswerRelationships: len(answerRels),
		Truth:               truthLat.ComputeMetrics(),
		Answer:              answerLat.ComputeMetrics(),
	}

	v.logger.Debug("verification complete",
		"valid", res.IsValid,
		"confidence", res.Confidence,
		"hallucinated", len(res.Hallucinated),
		"truth_concepts", res.Truth.ConceptCount,
		"answer_concepts", res.Answer.ConceptCount,
	)
	return res, nil
}

func (v *Verifier) buildLattice(text string) (*lattice.Lattice, error) {
	ctx := v.adapter(text)
	gen := fca.NewGenerator(ctx, fca.WithConceptLimit(v.limit))
	concepts, err := gen.GenerateAll()
	if err != nil {
		return nil, err
	}
	return lattice.New(ctx, concepts), nil
}
