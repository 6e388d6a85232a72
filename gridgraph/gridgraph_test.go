package gridgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/gridgraph"
	"github.com/katalvlaran/graphlabel/labeling"
)

func TestNewGridGraph_Errors(t *testing.T) {
	_, err := gridgraph.NewGridGraph(nil, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
	_, err = gridgraph.NewGridGraph([][]float64{{}}, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
	_, err = gridgraph.NewGridGraph([][]float64{{1, 2}, {3}}, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrNonRectangular)
}

func TestNewGridGraph_CopiesInput(t *testing.T) {
	in := [][]float64{{1, 2}}
	gg, err := gridgraph.NewGridGraph(in, gridgraph.GridOptions{})
	require.NoError(t, err)
	in[0][0] = 9
	assert.Equal(t, 1.0, gg.CellValues[0][0])
}

func TestIndexCoordinate(t *testing.T) {
	gg, err := gridgraph.NewGridGraph([][]float64{{0, 0, 0}, {0, 0, 0}}, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	assert.Equal(t, 6, gg.Size())
	assert.Equal(t, 5, gg.Index(2, 1))
	x, y := gg.Coordinate(5)
	assert.Equal(t, [2]int{2, 1}, [2]int{x, y})
	assert.True(t, gg.InBounds(2, 1))
	assert.False(t, gg.InBounds(3, 0))
}

func TestSample_EdgeCounts(t *testing.T) {
	values := [][]float64{{0, 1, 2}, {3, 4, 5}}
	for _, tc := range []struct {
		conn  gridgraph.Connectivity
		edges int
	}{
		{gridgraph.Conn4, 7},
		{gridgraph.Conn8, 11},
	} {
		opts := gridgraph.DefaultGridOptions()
		opts.Conn = tc.conn
		gg, err := gridgraph.NewGridGraph(values, opts)
		require.NoError(t, err)

		s, err := gg.Sample()
		require.NoError(t, err)
		assert.Equal(t, 6, s.NumNodes())
		assert.Equal(t, tc.edges, s.NumEdges())
		assert.False(t, s.HasSelfLoop())
		assert.Equal(t, feature.Dense{4, 1}, s.Node(gg.Index(1, 1)))

		require.NoError(t, labeling.Validate([]*labeling.Sample{s}, []labeling.Labeling{gg.Threshold(3)}))
	}
}

func TestThresholdMask(t *testing.T) {
	gg, err := gridgraph.NewGridGraph([][]float64{{0, 5}, {5, 0}}, gridgraph.GridOptions{})
	require.NoError(t, err)
	l := gg.Threshold(1)
	assert.Equal(t, labeling.Labeling{false, true, true, false}, l)

	mask, err := gg.Mask(l)
	require.NoError(t, err)
	assert.Equal(t, [][]bool{{false, true}, {true, false}}, mask)

	_, err = gg.Mask(l[:3])
	require.ErrorIs(t, err, gridgraph.ErrLabelShape)
}

func TestComponents(t *testing.T) {
	values := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	gg4, err := gridgraph.NewGridGraph(values, gridgraph.GridOptions{Conn: gridgraph.Conn4})
	require.NoError(t, err)
	comps, err := gg4.Components(gg4.Threshold(1))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {4}, {8}}, comps)

	gg8, err := gridgraph.NewGridGraph(values, gridgraph.GridOptions{Conn: gridgraph.Conn8})
	require.NoError(t, err)
	comps, err = gg8.Components(gg8.Threshold(1))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 4, 8}}, comps)

	_, err = gg8.Components(labeling.Labeling{true})
	require.ErrorIs(t, err, gridgraph.ErrLabelShape)
}

// TestDenoise segments a two-region image with one flipped pixel. Smoothing
// across the 4 edges of the flipped pixel outweighs its node potential.
func TestDenoise(t *testing.T) {
	clean := [][]float64{
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
	}
	noisy := make([][]float64, len(clean))
	for y := range clean {
		noisy[y] = append([]float64(nil), clean[y]...)
	}
	noisy[2][3] = 0

	cg, err := gridgraph.NewGridGraph(clean, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	ng, err := gridgraph.NewGridGraph(noisy, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	cs, err := cg.Sample()
	require.NoError(t, err)
	ns, err := ng.Sample()
	require.NoError(t, err)
	truth := cg.Threshold(0.5)
	require.NotEqual(t, truth, ng.Threshold(0.5))

	p, err := labeling.New([]*labeling.Sample{cs}, []labeling.Labeling{truth})
	require.NoError(t, err)
	require.Equal(t, labeling.Dimensions{Node: 2, Edge: 2}, p.Dimensions())

	// edge block [0.6, 0], node block [2, -1]
	got, err := p.Predict(ns, []float64{0.6, 0, 2, -1})
	require.NoError(t, err)
	assert.Equal(t, truth, got)

	comps, err := ng.Components(got)
	require.NoError(t, err)
	assert.Len(t, comps, 1)
	assert.Len(t, comps[0], 15)
}
