package labeling

import (
	"fmt"
	"time"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/graph"
	"github.com/katalvlaran/graphlabel/potts"
)

// SeparationOracle returns the most violated constraint of sample idx under
// weights w: the labeling y maximizing w·psi(x, y) + loss(y), its Hamming
// loss against the ground truth, and psi(x, y).
//
// The edge block of w must be non-negative; otherwise the Potts solver
// rejects the model with potts.ErrNegativeEdgeWeight. When several labelings
// tie, the solver's tie rule applies (see potts.MinCutSolver).
func (p *Problem) SeparationOracle(idx int, w []float64) (loss float64, psi feature.Vector, err error) {
	start := time.Now()
	defer func() { p.metrics.observe(loss, time.Since(start), err) }()

	sample, truth, err := p.Sample(idx)
	if err != nil {
		return 0, nil, err
	}

	predicted, err := p.infer(sample, truth, w)
	if err != nil {
		return 0, nil, fmt.Errorf("labeling: sample %d: %w", idx, err)
	}

	for i := range predicted {
		if predicted[i] != truth[i] {
			loss++
		}
	}

	psi, err = p.JointFeatureVector(sample, predicted)
	if err != nil {
		return 0, nil, fmt.Errorf("labeling: sample %d: %w", idx, err)
	}

	p.logger.Debug().
		Int("sample", idx).
		Int("nodes", sample.NumNodes()).
		Float64("loss", loss).
		Dur("elapsed", time.Since(start)).
		Msg("separation oracle")

	return loss, psi, nil
}

// Predict returns the highest-scoring labeling of sample under weights w,
// without loss augmentation. sample need not belong to the training set but
// must use the problem's representation and dimensions.
func (p *Problem) Predict(sample *Sample, w []float64) (Labeling, error) {
	return p.infer(sample, nil, w)
}

// infer builds the Potts model of sample under w and solves it. A non-nil
// truth adds margin-rescaling loss augmentation: -1 on nodes whose true label
// is true, +1 on the others.
func (p *Problem) infer(sample *Sample, truth Labeling, w []float64) (Labeling, error) {
	if sample == nil {
		return nil, fmt.Errorf("labeling: nil sample")
	}
	if len(w) != p.dims.Total() {
		return nil, &feature.DimensionMismatchError{Op: "weights", Want: p.dims.Total(), Got: len(w)}
	}
	edgeW, nodeW := w[:p.dims.Edge], w[p.dims.Edge:]

	model := graph.CopyStructure[float64, float64](sample)
	for i := 0; i < sample.NumNodes(); i++ {
		score, err := p.dot(sample.Node(i), nodeW)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if truth != nil {
			if truth[i] {
				score -= 1
			} else {
				score += 1
			}
		}
		model.SetNode(i, score)

		for n := 0; n < sample.NumNeighbors(i); n++ {
			j := sample.Neighbor(i, n)
			if i >= j {
				continue
			}
			weight, err := p.dot(sample.Edge(i, n), edgeW)
			if err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", i, j, err)
			}
			model.SetEdge(i, n, weight)
		}
	}

	labels, err := p.solver.Solve(model)
	if err != nil {
		return nil, err
	}
	if len(labels) != sample.NumNodes() {
		return nil, fmt.Errorf("%w: solver returned %d labels", potts.ErrLabelCount, len(labels))
	}

	return labels, nil
}

func (p *Problem) dot(v feature.Vector, block []float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("missing feature vector")
	}

	return v.Dot(block)
}
