package lattice

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Metrics summarizes the structural diagnostics of a lattice. All fields
// are deterministic functions of the covering graph.
type Metrics struct {
	ConceptCount    int     `json:"concept_count"`
	EdgeCount       int     `json:"edge_count"`
	Density         float64 `json:"density"`
	Beta0           int     `json:"beta0"`
	Beta1           int     `json:"beta1"`
	JoinIrreducible int     `json:"join_irreducible"`
	MeetIrreducible int     `json:"meet_irreducible"`
}

// Density is edge count over concept count squared, in [0, 1).
// A lattice with zero or one concept has density 0.
func (l *Lattice) Density() float64 {
	n := len(l.concepts)
	if n == 0 {
		return 0
	}
	return float64(l.edges) / float64(n*n)
}

// JoinIrreducibles returns the indices of concepts with exactly one direct
// subconcept (one covering predecessor).
func (l *Lattice) JoinIrreducibles() []int {
	var out []int
	for i := range l.concepts {
		if len(l.LowerCovers(i)) == 1 {
			out = append(out, i)
		}
	}
	return out
}

// MeetIrreducibles returns the indices of concepts with exactly one direct
// superconcept (one covering successor).
func (l *Lattice) MeetIrreducibles() []int {
	var out []int
	for i := range l.concepts {
		if len(l.UpperCovers(i)) == 1 {
			out = append(out, i)
		}
	}
	return out
}

// Betti computes the first two Betti numbers of the undirected covering
// graph: beta0 is the number of connected components; beta1 is the cycle
// rank, summed per component as edges - nodes + 1.
func (l *Lattice) Betti() (beta0, beta1 int) {
	if len(l.concepts) == 0 {
		return 0, 0
	}

	u := simple.NewUndirectedGraph()
	for i := range l.concepts {
		u.AddNode(simple.Node(i))
	}
	edges := l.g.Edges()
	for edges.Next() {
		e := edges.Edge()
		u.SetEdge(simple.Edge{F: e.From(), T: e.To()})
	}

	components := topo.ConnectedComponents(u)
	beta0 = len(components)

	member := make([]int, len(l.concepts))
	for ci, comp := range components {
		for _, n := range comp {
			member[int(n.ID())] = ci
		}
	}
	edgeCount := make([]int, len(components))
	ue := u.Edges()
	for ue.Next() {
		edgeCount[member[int(ue.Edge().From().ID())]]++
	}
	for ci, comp := range components {
		beta1 += edgeCount[ci] - len(comp) + 1
	}
	return beta0, beta1
}

// ComputeMetrics evaluates every structural metric in one pass.
func (l *Lattice) ComputeMetrics() Metrics {
	beta0, beta1 := l.Betti()
	return Metrics{
		ConceptCount:    len(l.concepts),
		EdgeCount:       l.edges,
		Density:         l.Density(),
		Beta0:           beta0,
		Beta1:           beta1,
		JoinIrreducible: len(l.JoinIrreducibles()),
		MeetIrreducible: len(l.MeetIrreducibles()),
	}
}
