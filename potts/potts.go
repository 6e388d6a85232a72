// Package potts finds exact maximum-a-posteriori labelings of binary,
// attractive Potts models.
//
// A model is a graph.Graph[float64, float64]: node i carries a potential u_i
// and every edge (i, j) a weight w_ij ≥ 0. The score of a labeling x is
//
//	Score(x) = Σ_{i: x_i} u_i + Σ_{(i,j): x_i = x_j} w_ij
//
// Because every pairwise term is non-negative the energy is submodular, and
// a maximizer is found exactly by one s–t minimum cut.
package potts

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/graphlabel/graph"
)

// Graph is the weighted graph a Solver works on: node potentials and
// non-negative edge weights.
type Graph = graph.Graph[float64, float64]

// Sentinel errors.
var (
	// ErrNegativeEdgeWeight indicates an edge weight below -Epsilon.
	ErrNegativeEdgeWeight = errors.New("potts: negative edge weight")

	// ErrNonFinite indicates a NaN or infinite potential or weight.
	ErrNonFinite = errors.New("potts: non-finite value")

	// ErrLabelCount indicates a labeling whose length differs from the node count.
	ErrLabelCount = errors.New("potts: labeling length does not match node count")
)

// Solver returns a labeling maximizing Score over all binary labelings.
// Implementations must be deterministic and safe for concurrent use on
// distinct graphs.
type Solver interface {
	Solve(g *Graph) ([]bool, error)
}

// Score evaluates the Potts objective of labels on g. Self-loops always
// connect equal labels and therefore contribute their weight.
func Score(g *Graph, labels []bool) (float64, error) {
	if len(labels) != g.NumNodes() {
		return 0, fmt.Errorf("%w: %d labels, %d nodes", ErrLabelCount, len(labels), g.NumNodes())
	}
	var s float64
	for i := 0; i < g.NumNodes(); i++ {
		if labels[i] {
			s += g.Node(i)
		}
		for n := 0; n < g.NumNeighbors(i); n++ {
			j := g.Neighbor(i, n)
			if i <= j && labels[i] == labels[j] {
				s += g.Edge(i, n)
			}
		}
	}

	return s, nil
}

func checkFinite(what string, i int, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %d is %v", ErrNonFinite, what, i, v)
	}

	return nil
}
