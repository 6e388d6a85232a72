package labeling

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/potts"
)

// StructuralProblem is the contract a cutting-plane trainer consumes.
// The trainer must keep the first NumEdgeWeights() entries of every weight
// vector it produces non-negative.
type StructuralProblem interface {
	NumSamples() int
	NumDimensions() int
	NumEdgeWeights() int
	TruthFeatureVector(idx int) (feature.Vector, error)
	SeparationOracle(idx int, w []float64) (loss float64, psi feature.Vector, err error)
}

var _ StructuralProblem = (*Problem)(nil)

// defaultWorkers mirrors the two worker threads of the classic threaded
// structural SVM problem.
const defaultWorkers = 2

// Option configures a Problem.
type Option func(*Problem)

// WithLogger sets the logger (default zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option {
	return func(p *Problem) { p.logger = l }
}

// WithSolver replaces the Potts MAP solver (default potts.NewMinCutSolver()).
func WithSolver(s potts.Solver) Option {
	return func(p *Problem) {
		if s != nil {
			p.solver = s
		}
	}
}

// WithMetrics records oracle activity into m.
func WithMetrics(m *Metrics) Option {
	return func(p *Problem) { p.metrics = m }
}

// WithWorkers bounds the concurrency of SeparationOracleAll and Risk.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Problem) {
		if n > 0 {
			p.workers = n
		}
	}
}

// Problem is a validated graph labeling problem. It holds the samples and
// labels it was built from without copying the graphs; callers must not
// mutate them afterwards.
type Problem struct {
	samples []*Sample
	labels  []Labeling
	dims    Dimensions
	kind    feature.Kind

	solver  potts.Solver
	logger  zerolog.Logger
	metrics *Metrics
	workers int
}

// New validates the dataset, infers its dimensions once and returns the
// problem. An invalid dataset yields an error wrapping ErrInvalidDataset and
// a nil Problem.
func New(samples []*Sample, labels []Labeling, opts ...Option) (*Problem, error) {
	if err := Validate(samples, labels); err != nil {
		return nil, err
	}

	p := &Problem{
		samples: append([]*Sample(nil), samples...),
		labels:  append([]Labeling(nil), labels...),
		dims:    InferDimensions(samples),
		kind:    datasetKind(samples),
		solver:  potts.NewMinCutSolver(),
		logger:  zerolog.Nop(),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.logger.Info().
		Int("samples", len(p.samples)).
		Int("node_dims", p.dims.Node).
		Int("edge_dims", p.dims.Edge).
		Stringer("kind", p.kind).
		Msg("graph labeling problem ready")

	return p, nil
}

// MustNew is like New but panics on an invalid dataset.
func MustNew(samples []*Sample, labels []Labeling, opts ...Option) *Problem {
	p, err := New(samples, labels, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// NumSamples returns the number of samples.
func (p *Problem) NumSamples() int { return len(p.samples) }

// NumDimensions returns the length of weight and feature vectors.
func (p *Problem) NumDimensions() int { return p.dims.Total() }

// NumEdgeWeights returns the length of the edge block at the start of the
// weight vector, which the trainer must keep non-negative.
func (p *Problem) NumEdgeWeights() int { return p.dims.Edge }

// Dimensions returns the inferred node and edge dimensionality.
func (p *Problem) Dimensions() Dimensions { return p.dims }

// Kind returns the dataset's feature representation.
func (p *Problem) Kind() feature.Kind { return p.kind }

// Sample returns sample idx and its ground-truth labeling.
func (p *Problem) Sample(idx int) (*Sample, Labeling, error) {
	if idx < 0 || idx >= len(p.samples) {
		return nil, nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, idx, len(p.samples))
	}

	return p.samples[idx], p.labels[idx], nil
}

// TruthFeatureVector returns psi of sample idx under its ground truth.
func (p *Problem) TruthFeatureVector(idx int) (feature.Vector, error) {
	s, truth, err := p.Sample(idx)
	if err != nil {
		return nil, err
	}

	return p.JointFeatureVector(s, truth)
}
