package labeling

import (
	"fmt"

	"github.com/katalvlaran/graphlabel/feature"
)

// JointFeatureVector returns psi(sample, labeling): the sum of the node
// vectors of true-labeled nodes in the node block, minus the edge vectors of
// edges with disagreeing endpoints in the edge block. Each undirected edge is
// counted once.
//
// Dense problems return feature.Dense; sparse problems return feature.Sparse
// with index-shifted, uncoalesced pairs. Vectors that do not fit the
// problem's dimensions yield an error matching feature.ErrDimensionMismatch.
func (p *Problem) JointFeatureVector(sample *Sample, labeling Labeling) (feature.Vector, error) {
	if sample == nil {
		return nil, fmt.Errorf("labeling: nil sample")
	}
	if sample.NumNodes() != len(labeling) {
		return nil, fmt.Errorf("%w: %d labels, %d nodes", ErrLabelingLength, len(labeling), sample.NumNodes())
	}
	acc, err := feature.NewAccumulator(p.kind, p.dims.Total())
	if err != nil {
		return nil, err
	}

	for i := 0; i < sample.NumNodes(); i++ {
		li := labeling[i]
		if li {
			v := sample.Node(i)
			if err := p.checkBlock(v, p.dims.Node, "node"); err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			if err := acc.Add(v, p.dims.Edge); err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
		}

		for n := 0; n < sample.NumNeighbors(i); n++ {
			j := sample.Neighbor(i, n)
			if i >= j || li == labeling[j] {
				continue
			}
			e := sample.Edge(i, n)
			if err := p.checkBlock(e, p.dims.Edge, "edge"); err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", i, j, err)
			}
			if err := acc.Sub(e, 0); err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", i, j, err)
			}
		}
	}

	return acc.Vector(), nil
}

// checkBlock rejects vectors that do not fit the block they belong to. A
// short dense vector or a sparse index past the block end would otherwise be
// accepted by the accumulator and spill into the neighbouring block.
func (p *Problem) checkBlock(v feature.Vector, want int, op string) error {
	if v == nil {
		return fmt.Errorf("missing %s vector", op)
	}
	switch v.Kind() {
	case feature.KindDense:
		if v.Len() != want {
			return &feature.DimensionMismatchError{Op: op, Want: want, Got: v.Len()}
		}
	case feature.KindSparse:
		if got := v.MaxIndexPlusOne(); got > want {
			return &feature.DimensionMismatchError{Op: op, Want: want, Got: got}
		}
	}

	return nil
}
