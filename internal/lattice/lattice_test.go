package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/fca"
	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/testutil"
)

func animalLattice(t *testing.T) *Lattice {
	t.Helper()
	ctx := fca.NewContext(
		[]string{"dog", "cat", "bird", "fish"},
		[]string{"legs", "fur", "flies", "swims"},
		[]fca.Incidence{
			{Object: "dog", Attribute: "legs"}, {Object: "dog", Attribute: "fur"},
			{Object: "cat", Attribute: "legs"}, {Object: "cat", Attribute: "fur"},
			{Object: "bird", Attribute: "legs"}, {Object: "bird", Attribute: "flies"},
			{Object: "fish", Attribute: "swims"},
		},
	)
	concepts, err := fca.NewGenerator(ctx).GenerateAll()
	require.NoError(t, err)
	return New(ctx, concepts)
}

func TestCoveringEdges_AnimalFixture(t *testing.T) {
	l := animalLattice(t)

	require.Equal(t, 6, l.Len())
	assert.Equal(t, 7, l.EdgeCount())

	// Lectic order of the fixture's concepts:
	// 0 top {}, 1 {swims}, 2 {legs}, 3 {fur,legs}, 4 {flies,legs}, 5 bottom.
	wantEdges := [][2]int{
		{1, 0}, {2, 0},
		{3, 2}, {4, 2},
		{5, 1}, {5, 3}, {5, 4},
	}
	for _, e := range wantEdges {
		assert.True(t, l.HasEdge(e[0], e[1]), "missing edge %d -> %d", e[0], e[1])
	}

	// Transitive pairs must not get direct edges.
	assert.False(t, l.HasEdge(3, 0), "3 -> 0 is transitive through 2")
	assert.False(t, l.HasEdge(5, 2), "5 -> 2 is transitive through 3 and 4")
	assert.False(t, l.HasEdge(5, 0))
}

func TestOrderConsistency(t *testing.T) {
	l := animalLattice(t)

	// intent(i) strictly contains intent(j) iff a directed path i -> j
	// exists in the covering graph.
	for i := 0; i < l.Len(); i++ {
		for j := 0; j < l.Len(); j++ {
			if i == j {
				continue
			}
			strict := fca.StrictSubset(l.Concept(j).Intent, l.Concept(i).Intent)
			reachable := topo.PathExistsIn(l.g, simple.Node(i), simple.Node(j))
			assert.Equal(t, strict, reachable, "order vs reachability mismatch for %d, %d", i, j)
		}
	}
}

func TestTopBottom(t *testing.T) {
	l := animalLattice(t)

	top, ok := l.Top()
	require.True(t, ok)
	assert.True(t, l.Concept(top).Intent.IsEmpty())

	bottom, ok := l.Bottom()
	require.True(t, ok)
	assert.Equal(t, uint64(4), l.Concept(bottom).Intent.GetCardinality())
	assert.True(t, l.Concept(bottom).Extent.IsEmpty())

	empty := New(fca.NewContext(nil, nil, nil), nil)
	_, ok = empty.Top()
	assert.False(t, ok)
	_, ok = empty.Bottom()
	assert.False(t, ok)
}

func TestMetrics_AnimalFixture(t *testing.T) {
	l := animalLattice(t)
	m := l.ComputeMetrics()

	assert.Equal(t, 6, m.ConceptCount)
	assert.Equal(t, 7, m.EdgeCount)
	assert.InDelta(t, 7.0/36.0, m.Density, 1e-12)
	assert.Equal(t, 1, m.Beta0)
	assert.Equal(t, 2, m.Beta1, "7 edges - 6 nodes + 1 component")
	assert.Equal(t, 3, m.JoinIrreducible)
	assert.Equal(t, 4, m.MeetIrreducible)
}

func TestDensityBounds(t *testing.T) {
	l := animalLattice(t)
	d := l.Density()
	assert.GreaterOrEqual(t, d, 0.0)
	assert.Less(t, d, 1.0)

	ctx := fca.NewContext([]string{"a"}, []string{"x"}, []fca.Incidence{{Object: "a", Attribute: "x"}})
	concepts, err := fca.NewGenerator(ctx).GenerateAll()
	require.NoError(t, err)
	single := New(ctx, concepts)
	require.Equal(t, 1, single.Len())
	assert.Equal(t, 0.0, single.Density())

	empty := New(fca.NewContext(nil, nil, nil), nil)
	assert.Equal(t, 0.0, empty.Density())
}

func TestBettiNonNegativity(t *testing.T) {
	l := animalLattice(t)
	b0, b1 := l.Betti()
	assert.GreaterOrEqual(t, b0, 1)
	assert.GreaterOrEqual(t, b1, 0)

	empty := New(fca.NewContext(nil, nil, nil), nil)
	b0, b1 = empty.Betti()
	assert.Equal(t, 0, b0)
	assert.Equal(t, 0, b1)
}

func TestBetti_DisconnectedComponents(t *testing.T) {
	// Two fully separate object/attribute groups. The generated lattice is
	// still one component (top and bottom tie the groups together), so
	// instead exercise the component logic on a hand-built concept slice
	// without top or bottom.
	ctx := fca.NewContext(
		[]string{"o1", "o2", "o3", "o4"},
		[]string{"a", "b", "c", "d"},
		[]fca.Incidence{
			{Object: "o1", Attribute: "a"}, {Object: "o1", Attribute: "b"},
			{Object: "o2", Attribute: "a"},
			{Object: "o3", Attribute: "c"}, {Object: "o3", Attribute: "d"},
			{Object: "o4", Attribute: "c"},
		},
	)
	concepts := []fca.Concept{
		{Extent: ctx.ObjectSet("o1", "o2"), Intent: ctx.AttributeSet("a")},
		{Extent: ctx.ObjectSet("o1"), Intent: ctx.AttributeSet("a", "b")},
		{Extent: ctx.ObjectSet("o3", "o4"), Intent: ctx.AttributeSet("c")},
		{Extent: ctx.ObjectSet("o3"), Intent: ctx.AttributeSet("c", "d")},
	}
	l := New(ctx, concepts)

	b0, b1 := l.Betti()
	assert.Equal(t, 2, b0)
	assert.Equal(t, 0, b1)
}

func TestStabilityIndex(t *testing.T) {
	l := animalLattice(t)
	rng := testutil.Rand(1)

	// Concept 3 is ({cat,dog}, {fur,legs}): every non-empty subset of the
	// extent derives {fur,legs}, so stability is exactly 1.
	assert.Equal(t, 1.0, l.StabilityIndex(3, 200, rng))

	// Concept 2 is ({bird,cat,dog}, {legs}): singleton subsets derive
	// larger intents, so some trials fail and some succeed.
	s := l.StabilityIndex(2, 200, rng)
	assert.Greater(t, s, 0.0)
	assert.Less(t, s, 1.0)

	// Bottom has empty extent: stability 1 by convention.
	bottom, ok := l.Bottom()
	require.True(t, ok)
	assert.Equal(t, 1.0, l.StabilityIndex(bottom, 200, rng))
}

func TestStabilityDeterministicWithFixedSeed(t *testing.T) {
	l := animalLattice(t)

	a := l.StabilityIndex(2, 100, testutil.Rand(7))
	b := l.StabilityIndex(2, 100, testutil.Rand(7))
	assert.Equal(t, a, b)
}
