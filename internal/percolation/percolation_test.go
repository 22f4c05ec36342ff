package percolation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	icore "percolate/internal/core"
	"percolate/pkg/core"
)

// scenario is the 3×3 lattice
//
//	1 0 1
//	1 1 0
//	0 1 1
//
// with one cluster of five sites reaching the bottom row and an isolated
// site in the top-right corner.
func scenario(t *testing.T) *icore.ByteGrid {
	t.Helper()
	g, err := FromRows([][]int{
		{1, 0, 1},
		{1, 1, 0},
		{0, 1, 1},
	})
	require.NoError(t, err)
	return g
}

func TestScenarioSpans(t *testing.T) {
	g := scenario(t)

	assert.True(t, SpansStack(g))
	res := Burn(g)
	assert.True(t, res.Spans)
	assert.Equal(t, 3, res.Steps, "shortest path (0,0)→(1,0)→(1,1)→(2,1) has three steps")
}

func TestScenarioClusters(t *testing.T) {
	g := scenario(t)
	c := Label(g, LabelOptions{Resolve: true})

	require.Equal(t, 2, c.Count)
	assert.Equal(t, Distribution{5: 1, 1: 1}, c.Sizes)
	assert.Equal(t, 5, c.Largest)

	big := c.Labels.At(0, 0)
	for _, site := range [][2]int{{0, 1}, {1, 1}, {1, 2}, {2, 2}} {
		assert.Equal(t, big, c.Labels.At(site[0], site[1]), "site %v", site)
	}
	assert.NotEqual(t, big, c.Labels.At(2, 0))
	assert.Equal(t, 0, c.Labels.At(1, 0))
	assert.Equal(t, big, c.LargestLabel)
	assert.Equal(t, 5, c.SizeOf(big))
	assert.Equal(t, 1, c.SizeOf(c.Labels.At(2, 0)))
}

func TestLabelMergesToSmallerRoot(t *testing.T) {
	// Two arms open labels 1 and 2 in row 0; row 1 joins them from the left,
	// so label 2 must be absorbed into label 1.
	g, err := FromRows([][]int{
		{1, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	})
	require.NoError(t, err)

	c := Label(g, LabelOptions{Resolve: true})
	assert.Equal(t, 1, c.Count)
	assert.Equal(t, 5, c.Largest)
	for _, l := range c.Labels.Cells() {
		if l != 0 {
			assert.Equal(t, 1, l)
		}
	}
	assert.Equal(t, 0, c.SizeOf(2), "absorbed label is no longer a root")
}

func TestLabelWithoutResolveKeepsSizes(t *testing.T) {
	g, err := FromRows([][]int{
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 1},
	})
	require.NoError(t, err)

	raw := Label(g, LabelOptions{})
	resolved := Label(g, LabelOptions{Resolve: true})
	assert.Equal(t, resolved.Sizes, raw.Sizes)
	assert.Equal(t, resolved.Largest, raw.Largest)
	assert.Equal(t, 2, raw.Labels.At(2, 0), "right arm keeps its provisional label")
	assert.Equal(t, 1, resolved.Labels.At(2, 0))
}

func TestSpanningClusterIsLargest(t *testing.T) {
	g, err := FromRows([][]int{
		{0, 1, 0, 0, 1},
		{0, 1, 1, 0, 0},
		{1, 0, 1, 1, 0},
		{0, 0, 0, 1, 0},
		{1, 1, 0, 1, 0},
	})
	require.NoError(t, err)
	require.True(t, Burn(g).Spans)

	c := Label(g, LabelOptions{Resolve: true})
	assert.Equal(t, 7, c.Largest)
	assert.True(t, c.Touches(c.LargestLabel, 0))
	assert.True(t, c.Touches(c.LargestLabel, g.H-1))
	assert.False(t, c.Touches(c.LargestLabel, -1))
}

func TestEmptyLattice(t *testing.T) {
	g, err := Generate(6, 0, core.NewRNG(3))
	require.NoError(t, err)

	c := Label(g, LabelOptions{Resolve: true})
	assert.Empty(t, c.Sizes)
	assert.Zero(t, c.Largest)
	assert.Zero(t, c.LargestLabel)
	assert.Zero(t, c.Sizes.Max())
	assert.False(t, SpansStack(g))
	assert.Equal(t, BurnResult{}, Burn(g))
}

func TestFullLattice(t *testing.T) {
	const l = 7
	g, err := Generate(l, 1, core.NewRNG(3))
	require.NoError(t, err)

	c := Label(g, LabelOptions{})
	assert.Equal(t, Distribution{l * l: 1}, c.Sizes)
	assert.Equal(t, l*l, c.Largest)
	assert.True(t, SpansStack(g))
	assert.Equal(t, BurnResult{Spans: true, Steps: l - 1}, Burn(g))
}

func TestSingleSiteLattice(t *testing.T) {
	on, err := FromRows([][]int{{1}})
	require.NoError(t, err)
	assert.True(t, SpansStack(on))
	assert.Equal(t, BurnResult{Spans: true}, Burn(on))

	off, err := FromRows([][]int{{0}})
	require.NoError(t, err)
	assert.False(t, SpansStack(off))
	assert.False(t, Burn(off).Spans)
}

func TestBlockedLatticeDoesNotSpan(t *testing.T) {
	g, err := FromRows([][]int{
		{1, 1, 1, 1},
		{0, 0, 0, 1},
		{1, 1, 0, 0},
		{1, 1, 1, 1},
	})
	require.NoError(t, err)
	assert.False(t, SpansStack(g))
	assert.False(t, Burn(g).Spans)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := Generate(0, 0.5, core.NewRNG(1))
	assert.True(t, errors.Is(err, ErrInvalidSize))
	_, err = Generate(4, 1.5, core.NewRNG(1))
	assert.True(t, errors.Is(err, ErrInvalidProbability))
	_, err = Generate(4, -0.1, core.NewRNG(1))
	assert.True(t, errors.Is(err, ErrInvalidProbability))
}

func TestFromRowsRejectsBadInput(t *testing.T) {
	_, err := FromRows(nil)
	assert.ErrorIs(t, err, ErrNotSquare)
	_, err = FromRows([][]int{{1, 0}, {1}})
	assert.ErrorIs(t, err, ErrNotSquare)
	_, err = FromRows([][]int{{1, 0, 1}, {0, 1, 0}})
	assert.ErrorIs(t, err, ErrNotSquare)
	_, err = FromRows([][]int{{1, 2}, {0, 1}})
	assert.ErrorIs(t, err, ErrNotBinary)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(16, 0.4, core.NewStream(11, 5))
	require.NoError(t, err)
	b, err := Generate(16, 0.4, core.NewStream(11, 5))
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())
}

// TestRandomLatticeProperties checks the labeler against gonum's connected
// components, and both checkers against each other and the labeler, over many
// small random lattices.
func TestRandomLatticeProperties(t *testing.T) {
	checkers := make([]icore.Checker, 0, 2)
	for _, name := range []string{CheckerStack, CheckerFrontier} {
		f, ok := icore.Checkers()[name]
		require.True(t, ok, "checker %q not registered", name)
		checkers = append(checkers, f())
	}

	for seed := int64(0); seed < 200; seed++ {
		p := []float64{0.3, 0.5, 0.6, 0.8}[seed%4]
		g, err := Generate(5, p, core.NewRNG(seed))
		require.NoError(t, err)

		c := Label(g, LabelOptions{Resolve: true})
		require.Equal(t, g.Count(occupied), c.Sizes.Total(), "seed %d: sizes must cover every occupied site", seed)
		require.Equal(t, c.Count, c.Sizes.Clusters())
		require.Equal(t, c.Sizes.Max(), c.Largest)

		comps := gonumComponents(g)
		require.Len(t, comps, c.Count, "seed %d: cluster count", seed)
		seen := make(map[int]bool)
		for _, comp := range comps {
			label := c.Labels.Cells()[comp[0]]
			require.NotZero(t, label)
			require.False(t, seen[label], "seed %d: label %d shared by two components", seed, label)
			seen[label] = true
			for _, idx := range comp {
				require.Equal(t, label, c.Labels.Cells()[idx], "seed %d: site %d", seed, idx)
			}
			require.Equal(t, len(comp), c.SizeOf(label))
		}

		spans := checkers[0].Spans(g)
		for _, ch := range checkers[1:] {
			require.Equal(t, spans, ch.Spans(g), "seed %d: %s disagrees", seed, ch.Name())
		}
		require.Equal(t, spans, checkers[0].Spans(g), "seed %d: repeat run changed result", seed)
		require.Equal(t, spans, spanningLabelExists(c, g.H), "seed %d: checker and labeler disagree on spanning", seed)
	}
}

func spanningLabelExists(c Clusters, h int) bool {
	for _, l := range c.Labels.Row(0) {
		if l != 0 && c.Touches(l, h-1) {
			return true
		}
	}
	return false
}

// gonumComponents returns the occupied-site components of g as row-major
// index lists, computed independently of Label.
func gonumComponents(g *icore.ByteGrid) [][]int {
	ug := simple.NewUndirectedGraph()
	cells := g.Cells()
	for i, v := range cells {
		if v == occupied {
			ug.AddNode(simple.Node(i))
		}
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			if cells[i] != occupied {
				continue
			}
			if x+1 < g.W && cells[i+1] == occupied {
				ug.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(i + 1)})
			}
			if y+1 < g.H && cells[i+g.W] == occupied {
				ug.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(i + g.W)})
			}
		}
	}
	var out [][]int
	for _, comp := range topo.ConnectedComponents(ug) {
		idx := make([]int, len(comp))
		for i, n := range comp {
			idx[i] = int(n.ID())
		}
		out = append(out, idx)
	}
	return out
}
