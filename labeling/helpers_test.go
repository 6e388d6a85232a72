package labeling_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/labeling"
)

// edgeSpec is one undirected edge of a test sample.
type edgeSpec struct {
	i, j int
	v    feature.Vector
}

// buildSample assembles a Sample from node vectors and edges.
func buildSample(t testing.TB, nodes []feature.Vector, edges []edgeSpec) *labeling.Sample {
	t.Helper()
	s := labeling.NewSample()
	for _, v := range nodes {
		s.AddNode(v)
	}
	for _, e := range edges {
		require.NoError(t, s.AddEdge(e.i, e.j, e.v))
	}

	return s
}

// pathSample is the 3-node path 0–1–2 with node vectors [1,0] and edge vectors [1].
func pathSample(t testing.TB) *labeling.Sample {
	n := func() feature.Vector { return feature.Dense{1, 0} }
	e := func() feature.Vector { return feature.Dense{1} }

	return buildSample(t, []feature.Vector{n(), n(), n()}, []edgeSpec{{0, 1, e()}, {1, 2, e()}})
}

// toSparse lists every entry of d, zeros included, so that the sparse twin
// has the same inferred dimensionality.
func toSparse(d feature.Dense) feature.Sparse {
	s := make(feature.Sparse, 0, len(d))
	for k, v := range d {
		s = append(s, feature.Pair{Index: k, Value: v})
	}

	return s
}

// randomDataset builds a dense dataset and its sparse twin with identical
// structure and values. Edge vectors are non-negative.
func randomDataset(t testing.TB, r *rand.Rand, samples, nodeDims, edgeDims int) (dense, sparse []*labeling.Sample, labels []labeling.Labeling) {
	t.Helper()
	for s := 0; s < samples; s++ {
		n := 2 + r.Intn(8)
		d := labeling.NewSample()
		sp := labeling.NewSample()
		lab := make(labeling.Labeling, n)
		for i := 0; i < n; i++ {
			v := make(feature.Dense, nodeDims)
			for k := range v {
				v[k] = r.NormFloat64()
			}
			d.AddNode(v)
			sp.AddNode(toSparse(v))
			lab[i] = r.Intn(2) == 1
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if r.Float64() > 0.35 {
					continue
				}
				v := make(feature.Dense, edgeDims)
				for k := range v {
					v[k] = r.Float64()
				}
				require.NoError(t, d.AddEdge(i, j, v))
				require.NoError(t, sp.AddEdge(i, j, toSparse(v)))
			}
		}
		dense = append(dense, d)
		sparse = append(sparse, sp)
		labels = append(labels, lab)
	}

	return dense, sparse, labels
}

// randomWeights returns a weight vector with a non-negative edge block.
func randomWeights(r *rand.Rand, dims labeling.Dimensions) []float64 {
	w := make([]float64, dims.Total())
	for k := range w {
		if k < dims.Edge {
			w[k] = r.Float64() * 2
		} else {
			w[k] = r.NormFloat64() * 2
		}
	}

	return w
}

func dot(t testing.TB, v feature.Vector, w []float64) float64 {
	t.Helper()
	got, err := v.Dot(w)
	require.NoError(t, err)

	return got
}
