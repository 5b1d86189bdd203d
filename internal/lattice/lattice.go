package lattice

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/fca"
)

// Lattice is an ordered collection of distinct formal concepts plus the
// directed covering graph over them. Concepts keep their generation
// (lectic) order; graph node IDs are concept indices.
//
// The concept slice and the graph are read-only after New returns.
type Lattice struct {
	ctx      *fca.Context
	concepts []fca.Concept
	g        *simple.DirectedGraph
	edges    int
}

// New builds the covering graph over the given concepts.
//
// An edge i -> j is added iff intent(i) strictly contains intent(j) and no
// third concept k satisfies intent(i) > intent(k) > intent(j). Edges point
// from the more specific concept toward the more general one.
func New(ctx *fca.Context, concepts []fca.Concept) *Lattice {
	l := &Lattice{
		ctx:      ctx,
		concepts: concepts,
		g:        simple.NewDirectedGraph(),
	}

	for i := range concepts {
		l.g.AddNode(simple.Node(i))
	}

	for i := range concepts {
		for j := range concepts {
			if i == j || !fca.StrictSubset(concepts[j].Intent, concepts[i].Intent) {
				continue
			}
			covering := true
			for k := range concepts {
				if k == i || k == j {
					continue
				}
				if fca.StrictSubset(concepts[k].Intent, concepts[i].Intent) &&
					fca.StrictSubset(concepts[j].Intent, concepts[k].Intent) {
					covering = false
					break
				}
			}
			if covering {
				l.g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
				l.edges++
			}
		}
	}

	return l
}

// Context returns the context the concepts were generated from.
func (l *Lattice) Context() *fca.Context { return l.ctx }

// Len returns the number of concepts.
func (l *Lattice) Len() int { return len(l.concepts) }

// Concept returns the concept at index i in lectic order.
func (l *Lattice) Concept(i int) fca.Concept { return l.concepts[i] }

// EdgeCount returns the number of covering edges.
func (l *Lattice) EdgeCount() int { return l.edges }

// HasEdge reports whether i -> j is a covering edge.
func (l *Lattice) HasEdge(i, j int) bool {
	return l.g.HasEdgeFromTo(int64(i), int64(j))
}

// UpperCovers returns the indices of the direct superconcepts of i
// (covering successors), in ascending index order.
func (l *Lattice) UpperCovers(i int) []int {
	return nodeIndices(l.g.From(int64(i)))
}

// LowerCovers returns the indices of the direct subconcepts of i
// (covering predecessors), in ascending index order.
func (l *Lattice) LowerCovers(i int) []int {
	return nodeIndices(l.g.To(int64(i)))
}

func nodeIndices(it graph.Nodes) []int {
	nodes := graph.NodesOf(it)
	out := make([]int, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, int(n.ID()))
	}
	// gonum iteration order is unspecified; sort for determinism.
	sort.Ints(out)
	return out
}

// Top returns the index of the concept with empty intent (the most general
// concept), or ok=false when no such concept exists.
func (l *Lattice) Top() (int, bool) {
	for i, c := range l.concepts {
		if c.Intent.IsEmpty() {
			return i, true
		}
	}
	return 0, false
}

// Bottom returns the index of the first concept with maximal intent
// cardinality (the most specific concept), or ok=false on an empty lattice.
func (l *Lattice) Bottom() (int, bool) {
	if len(l.concepts) == 0 {
		return 0, false
	}
	best := 0
	for i, c := range l.concepts {
		if c.Intent.GetCardinality() > l.concepts[best].Intent.GetCardinality() {
			best = i
		}
	}
	return best, true
}
