package fca

import (
	"errors"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// DefaultConceptLimit bounds concept generation. The number of concepts is
// exponential in the attribute count in the worst case; the limit turns a
// pathological context into a clean resource-exhaustion failure instead of
// an unbounded loop.
const DefaultConceptLimit = 10000

// AttributeComparator is a total order on attribute names. It must be
// deterministic: the same comparator over the same context always yields the
// same enumeration order. The order affects only the enumeration sequence,
// never the set of concepts produced.
type AttributeComparator func(a, b string) int

// LexicographicOrder is the default attribute comparator.
func LexicographicOrder(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// GenerationError is a structured failure from concept generation.
type GenerationError struct {
	Code    GenerationErrorCode
	Message string
	Limit   int
}

// GenerationErrorCode categorizes generation failures.
type GenerationErrorCode string

// ErrCodeConceptLimit indicates the concept ceiling was exceeded.
// Partial results are discarded; a truncated lattice would silently corrupt
// every structural metric derived from it.
const ErrCodeConceptLimit GenerationErrorCode = "CONCEPT_LIMIT_EXCEEDED"

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s (limit=%d)", e.Code, e.Message, e.Limit)
}

// IsLimitError reports whether err is a concept-limit failure.
// Uses errors.As to handle wrapped errors.
func IsLimitError(err error) bool {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeConceptLimit
	}
	return false
}

// Generator enumerates all formal concepts of a context with Next-Closure,
// in strictly increasing lectic order of intents, each exactly once.
//
// The generator is sequential by design: lectic order depends on scanning
// the fixed attribute order strictly right to left.
type Generator struct {
	ctx   *Context
	order []int // position -> attribute index
	pos   []int // attribute index -> position
	limit int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithConceptLimit sets the generation ceiling.
func WithConceptLimit(n int) GeneratorOption {
	return func(g *Generator) {
		g.limit = n
	}
}

// WithAttributeOrder sets the total order Next-Closure scans.
// The comparator is applied once at construction; ties fall back to the
// context's index order so the permutation is always total.
func WithAttributeOrder(cmp AttributeComparator) GeneratorOption {
	return func(g *Generator) {
		names := g.ctx.Attributes()
		sort.SliceStable(g.order, func(i, j int) bool {
			return cmp(names[g.order[i]], names[g.order[j]]) < 0
		})
		for p, attr := range g.order {
			g.pos[attr] = p
		}
	}
}

// NewGenerator creates a Generator over ctx. The default order is the
// context's lexicographic index order; the default ceiling is
// DefaultConceptLimit.
func NewGenerator(ctx *Context, opts ...GeneratorOption) *Generator {
	g := &Generator{
		ctx:   ctx,
		order: make([]int, ctx.AttributeCount()),
		pos:   make([]int, ctx.AttributeCount()),
		limit: DefaultConceptLimit,
	}
	for i := range g.order {
		g.order[i] = i
		g.pos[i] = i
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NextClosure computes the lectically next closed attribute set after
// current, or (nil, false) when current is the last closed set.
// The input bitmap is not modified.
func (g *Generator) NextClosure(current *roaring.Bitmap) (*roaring.Bitmap, bool) {
	work := current.Clone()

	// Scan positions from highest to lowest.
	for i := len(g.order) - 1; i >= 0; i-- {
		attr := uint32(g.order[i])

		if work.Contains(attr) {
			// Backtrack: drop the attribute and keep scanning leftward.
			work.Remove(attr)
			continue
		}

		candidate := work.Clone()
		candidate.Add(attr)
		closed := g.ctx.Closure(candidate)

		// The candidate is canonical only if closing it adds nothing at or
		// below position i. Otherwise this closed set was (or will be)
		// reached from a lectically smaller prefix.
		if g.canonicalAt(closed, candidate, i) {
			return closed, true
		}
	}

	return nil, false
}

func (g *Generator) canonicalAt(closed, candidate *roaring.Bitmap, i int) bool {
	it := closed.Iterator()
	for it.HasNext() {
		m := it.Next()
		if candidate.Contains(m) {
			continue
		}
		if g.pos[int(m)] <= i {
			return false
		}
	}
	return true
}

// GenerateAll enumerates every formal concept of the context, starting from
// the closure of the empty attribute set. Returns a GenerationError with
// code CONCEPT_LIMIT_EXCEEDED and no concepts if the ceiling is hit.
func (g *Generator) GenerateAll() ([]Concept, error) {
	var concepts []Concept

	current := g.ctx.Closure(roaring.New())
	for {
		if len(concepts) >= g.limit {
			return nil, &GenerationError{
				Code:    ErrCodeConceptLimit,
				Message: "concept generation exceeded the configured ceiling",
				Limit:   g.limit,
			}
		}

		concepts = append(concepts, Concept{
			Extent: g.ctx.DeriveExtent(current),
			Intent: current,
		})

		next, ok := g.NextClosure(current)
		if !ok {
			return concepts, nil
		}
		current = next
	}
}
