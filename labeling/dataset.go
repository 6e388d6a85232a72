package labeling

import (
	"fmt"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/graph"
)

// Sample is one training graph: every node and every edge carries a feature
// vector. Edge vectors must be non-negative.
type Sample = graph.Graph[feature.Vector, feature.Vector]

// Labeling assigns a binary label to every node of a Sample, indexed like
// the sample's nodes.
type Labeling []bool

// NewSample returns an empty Sample that rejects self-loops.
func NewSample() *Sample {
	return graph.New[feature.Vector, feature.Vector]()
}

// IsValid reports whether samples and labels form a valid graph labeling
// problem. It never panics; see Validate for the list of checks.
func IsValid(samples []*Sample, labels []Labeling) bool {
	return Validate(samples, labels) == nil
}

// Validate checks that samples and labels form a valid graph labeling
// problem and returns an error wrapping ErrInvalidDataset describing the
// first violation:
//
//   - len(samples) == len(labels) and the dataset is not empty;
//   - every sample is non-nil and has one label per node;
//   - no sample contains a self-loop;
//   - every node and edge vector is non-nil and non-empty, and all share one
//     representation kind;
//   - every edge vector entry is >= 0 and no sparse index is negative;
//   - for dense data, all node vectors have one length and all edge vectors
//     have one length (the two lengths may differ).
func Validate(samples []*Sample, labels []Labeling) error {
	if len(samples) != len(labels) {
		return invalid("%d samples but %d labelings", len(samples), len(labels))
	}
	if len(samples) == 0 {
		return invalid("no samples")
	}

	c := checker{nodeDims: -1, edgeDims: -1}
	for i, s := range samples {
		if s == nil {
			return invalid("sample %d is nil", i)
		}
		if s.NumNodes() != len(labels[i]) {
			return invalid("sample %d has %d nodes but %d labels", i, s.NumNodes(), len(labels[i]))
		}
		if s.HasSelfLoop() {
			return invalid("sample %d contains a self-loop", i)
		}
		for j := 0; j < s.NumNodes(); j++ {
			if err := c.node(s.Node(j)); err != nil {
				return invalid("sample %d node %d: %v", i, j, err)
			}
			for n := 0; n < s.NumNeighbors(j); n++ {
				if err := c.edge(s.Edge(j, n)); err != nil {
					return invalid("sample %d edge %d-%d: %v", i, j, s.Neighbor(j, n), err)
				}
			}
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidDataset}, args...)...)
}

// checker carries the dataset-wide agreements discovered while validating.
type checker struct {
	kind     feature.Kind
	nodeDims int // -1 until the first dense node vector
	edgeDims int // -1 until the first dense edge vector
}

func (c *checker) common(v feature.Vector) error {
	if v == nil {
		return fmt.Errorf("missing feature vector")
	}
	if v.Len() == 0 {
		return fmt.Errorf("empty feature vector")
	}
	if c.kind == 0 {
		c.kind = v.Kind()
	} else if v.Kind() != c.kind {
		return fmt.Errorf("%v vector in a %v dataset", v.Kind(), c.kind)
	}
	if s, ok := v.(feature.Sparse); ok {
		for _, p := range s {
			if p.Index < 0 {
				return fmt.Errorf("negative sparse index %d", p.Index)
			}
		}
	}

	return nil
}

func (c *checker) node(v feature.Vector) error {
	if err := c.common(v); err != nil {
		return err
	}
	if c.kind != feature.KindDense {
		return nil
	}
	if c.nodeDims == -1 {
		c.nodeDims = v.Len()
	}
	if v.Len() != c.nodeDims {
		return fmt.Errorf("node vector has %d dims, dataset has %d", v.Len(), c.nodeDims)
	}

	return nil
}

func (c *checker) edge(v feature.Vector) error {
	if err := c.common(v); err != nil {
		return err
	}
	if m := v.Min(); m < 0 {
		return fmt.Errorf("edge vector has negative entry %g", m)
	}
	if c.kind != feature.KindDense {
		return nil
	}
	if c.edgeDims == -1 {
		c.edgeDims = v.Len()
	}
	if v.Len() != c.edgeDims {
		return fmt.Errorf("edge vector has %d dims, dataset has %d", v.Len(), c.edgeDims)
	}

	return nil
}

// datasetKind returns the representation of the first vector in samples,
// or KindDense for a dataset without any vectors.
func datasetKind(samples []*Sample) feature.Kind {
	for _, s := range samples {
		if s.NumNodes() > 0 {
			return s.Node(0).Kind()
		}
	}

	return feature.KindDense
}
