package labeling_test

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/labeling"
	"github.com/katalvlaran/graphlabel/potts"
)

func pathProblem(t *testing.T, opts ...labeling.Option) *labeling.Problem {
	t.Helper()
	p, err := labeling.New(
		[]*labeling.Sample{pathSample(t)},
		[]labeling.Labeling{{true, true, false}},
		opts...,
	)
	require.NoError(t, err)

	return p
}

func TestNew_Shape(t *testing.T) {
	p := pathProblem(t)
	assert.Equal(t, 1, p.NumSamples())
	assert.Equal(t, 3, p.NumDimensions())
	assert.Equal(t, 1, p.NumEdgeWeights())
	assert.Equal(t, labeling.Dimensions{Node: 2, Edge: 1}, p.Dimensions())
	assert.Equal(t, feature.KindDense, p.Kind())

	s, truth, err := p.Sample(0)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumNodes())
	assert.Equal(t, labeling.Labeling{true, true, false}, truth)

	_, _, err = p.Sample(1)
	require.ErrorIs(t, err, labeling.ErrIndexOutOfRange)
	_, _, err = p.Sample(-1)
	require.ErrorIs(t, err, labeling.ErrIndexOutOfRange)
}

func TestMustNew(t *testing.T) {
	assert.NotPanics(t, func() {
		labeling.MustNew([]*labeling.Sample{pathSample(t)}, []labeling.Labeling{{true, true, false}})
	})
	assert.Panics(t, func() {
		labeling.MustNew([]*labeling.Sample{pathSample(t)}, []labeling.Labeling{{true}})
	})
}

// TestTruthFeatureVector_Path checks psi of the path under labels T,T,F:
// the disagreeing edge 1–2 contributes -1, two true nodes contribute [2,0].
func TestTruthFeatureVector_Path(t *testing.T) {
	p := pathProblem(t)
	psi, err := p.TruthFeatureVector(0)
	require.NoError(t, err)
	assert.Equal(t, feature.Dense{-1, 2, 0}, psi)

	_, err = p.TruthFeatureVector(5)
	require.ErrorIs(t, err, labeling.ErrIndexOutOfRange)
}

func TestTruthFeatureVector_Sparse(t *testing.T) {
	s := buildSample(t,
		[]feature.Vector{
			feature.Sparse{{Index: 0, Value: 1}},
			feature.Sparse{{Index: 0, Value: 1}},
			feature.Sparse{{Index: 0, Value: 1}},
		},
		[]edgeSpec{
			{0, 1, feature.Sparse{{Index: 0, Value: 1}}},
			{1, 2, feature.Sparse{{Index: 0, Value: 1}}},
		})
	p, err := labeling.New([]*labeling.Sample{s}, []labeling.Labeling{{true, true, false}})
	require.NoError(t, err)
	assert.Equal(t, feature.KindSparse, p.Kind())
	assert.Equal(t, 2, p.NumDimensions())

	psi, err := p.TruthFeatureVector(0)
	require.NoError(t, err)
	assert.Equal(t, feature.Sparse{
		{Index: 1, Value: 1},
		{Index: 1, Value: 1},
		{Index: 0, Value: -1},
	}, psi)

	dense, err := feature.Densify(psi, 2)
	require.NoError(t, err)
	assert.Equal(t, feature.Dense{-1, 2}, dense)
}

func TestJointFeatureVector_Errors(t *testing.T) {
	p := pathProblem(t)

	_, err := p.JointFeatureVector(pathSample(t), labeling.Labeling{true})
	require.ErrorIs(t, err, labeling.ErrLabelingLength)

	wide := buildSample(t, []feature.Vector{feature.Dense{1, 0, 0}}, nil)
	_, err = p.JointFeatureVector(wide, labeling.Labeling{true})
	require.ErrorIs(t, err, feature.ErrDimensionMismatch)

	// False nodes never touch the accumulator.
	psi, err := p.JointFeatureVector(wide, labeling.Labeling{false})
	require.NoError(t, err)
	assert.Equal(t, feature.Dense{0, 0, 0}, psi)
}

// TestJointFeatureVector_SparseBlockOverflow rejects a sparse edge index that
// fits the total width but lies past the edge block.
func TestJointFeatureVector_SparseBlockOverflow(t *testing.T) {
	train := buildSample(t,
		[]feature.Vector{feature.Sparse{{Index: 1, Value: 1}}, feature.Sparse{{Index: 0, Value: 1}}},
		[]edgeSpec{{0, 1, feature.Sparse{{Index: 0, Value: 1}}}})
	p, err := labeling.New([]*labeling.Sample{train}, []labeling.Labeling{{true, false}})
	require.NoError(t, err)
	require.Equal(t, labeling.Dimensions{Node: 2, Edge: 1}, p.Dimensions())

	external := buildSample(t,
		[]feature.Vector{feature.Sparse{{Index: 0, Value: 1}}, feature.Sparse{{Index: 1, Value: 1}}},
		[]edgeSpec{{0, 1, feature.Sparse{{Index: 1, Value: 5}}}})
	_, err = p.JointFeatureVector(external, labeling.Labeling{true, false})
	require.ErrorIs(t, err, feature.ErrDimensionMismatch)
	var dm *feature.DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, "edge", dm.Op)
	assert.Equal(t, 1, dm.Want)
	assert.Equal(t, 2, dm.Got)

	// Agreeing labels skip the edge, so the node block alone is accumulated.
	psi, err := p.JointFeatureVector(external, labeling.Labeling{true, true})
	require.NoError(t, err)
	dense, err := feature.Densify(psi, p.Dimensions().Total())
	require.NoError(t, err)
	assert.Equal(t, feature.Dense{0, 1, 1}, dense)

	wideNode := buildSample(t, []feature.Vector{feature.Sparse{{Index: 2, Value: 1}}}, nil)
	_, err = p.JointFeatureVector(wideNode, labeling.Labeling{true})
	require.ErrorIs(t, err, feature.ErrDimensionMismatch)

	_, err = p.Predict(external, []float64{0, 0, 0})
	require.ErrorIs(t, err, feature.ErrDimensionMismatch)
}

// TestSeparationOracle_Path checks the loss-augmented argmax on the path.
// Potentials are 1, 1, 3 and both edges weigh 0.5, so every node is labeled
// true and only node 2 disagrees with the ground truth.
func TestSeparationOracle_Path(t *testing.T) {
	p := pathProblem(t)
	w := []float64{0.5, 2, 0}

	loss, psi, err := p.SeparationOracle(0, w)
	require.NoError(t, err)
	assert.Equal(t, 1.0, loss)
	assert.Equal(t, feature.Dense{0, 3, 0}, psi)

	truth, err := p.TruthFeatureVector(0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, loss+dot(t, psi, w), dot(t, truth, w))
}

// TestSeparationOracle_ZeroWeights flips every label: the augmentation is the
// only signal and it always favors disagreeing with the truth.
func TestSeparationOracle_ZeroWeights(t *testing.T) {
	p := pathProblem(t)
	loss, psi, err := p.SeparationOracle(0, make([]float64, 3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, loss)
	assert.Equal(t, feature.Dense{-1, 1, 0}, psi)
}

// TestSeparationOracle_Separable returns the truth with zero loss when the
// node block separates the classes by more than the margin.
func TestSeparationOracle_Separable(t *testing.T) {
	pos := func() feature.Vector { return feature.Dense{1, 0} }
	neg := func() feature.Vector { return feature.Dense{0, 1} }
	s := buildSample(t,
		[]feature.Vector{pos(), neg(), pos(), neg()},
		[]edgeSpec{{0, 1, feature.Dense{1}}, {1, 2, feature.Dense{1}}, {2, 3, feature.Dense{1}}})
	truth := labeling.Labeling{true, false, true, false}
	p, err := labeling.New([]*labeling.Sample{s}, []labeling.Labeling{truth})
	require.NoError(t, err)

	w := []float64{0, 5, -5}
	loss, psi, err := p.SeparationOracle(0, w)
	require.NoError(t, err)
	assert.Zero(t, loss)

	want, err := p.TruthFeatureVector(0)
	require.NoError(t, err)
	assert.Equal(t, want, psi)

	got, err := p.Predict(s, w)
	require.NoError(t, err)
	assert.Equal(t, truth, got)
}

func TestSeparationOracle_Errors(t *testing.T) {
	p := pathProblem(t)

	_, _, err := p.SeparationOracle(1, []float64{0, 0, 0})
	require.ErrorIs(t, err, labeling.ErrIndexOutOfRange)

	_, _, err = p.SeparationOracle(0, []float64{0, 0})
	require.ErrorIs(t, err, feature.ErrDimensionMismatch)
	var dm *feature.DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 3, dm.Want)
	assert.Equal(t, 2, dm.Got)

	_, _, err = p.SeparationOracle(0, []float64{-1, 0, 0})
	require.ErrorIs(t, err, potts.ErrNegativeEdgeWeight)
}

func TestPredict(t *testing.T) {
	p := pathProblem(t)

	// Without augmentation every potential is 1 and edges weigh 0.5.
	got, err := p.Predict(pathSample(t), []float64{0.5, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, labeling.Labeling{true, true, true}, got)

	// Zero weights tie everywhere; ties resolve to false.
	got, err = p.Predict(pathSample(t), []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, labeling.Labeling{false, false, false}, got)

	wide := buildSample(t, []feature.Vector{feature.Dense{1, 0, 0}}, nil)
	_, err = p.Predict(wide, []float64{0, 0, 0})
	require.ErrorIs(t, err, feature.ErrDimensionMismatch)

	_, err = p.Predict(nil, []float64{0, 0, 0})
	require.Error(t, err)
}

// fixedSolver returns a preset labeling regardless of the model.
type fixedSolver struct{ labels []bool }

func (s fixedSolver) Solve(*potts.Graph) ([]bool, error) { return s.labels, nil }

func TestWithSolver(t *testing.T) {
	p := pathProblem(t, labeling.WithSolver(fixedSolver{labels: []bool{false, true, false}}))
	loss, psi, err := p.SeparationOracle(0, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, loss)
	assert.Equal(t, feature.Dense{-2, 1, 0}, psi)

	short := pathProblem(t, labeling.WithSolver(fixedSolver{labels: []bool{true}}))
	_, _, err = short.SeparationOracle(0, []float64{0, 0, 0})
	require.ErrorIs(t, err, potts.ErrLabelCount)
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := labeling.NewMetrics(reg)
	p := pathProblem(t, labeling.WithMetrics(m))

	_, _, err := p.SeparationOracle(0, []float64{0.5, 2, 0})
	require.NoError(t, err)
	_, _, err = p.SeparationOracle(0, []float64{0, 0})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OracleCalls))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OracleErrors))

	n, err := testutil.GatherAndCount(reg, "graphlabel_oracle_loss", "graphlabel_oracle_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Unregistered collectors still work.
	assert.NotPanics(t, func() { labeling.NewMetrics(nil).OracleCalls.Inc() })
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	p := pathProblem(t, labeling.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	_, _, err := p.SeparationOracle(0, []float64{0.5, 2, 0})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"graph labeling problem ready"`)
	assert.Contains(t, out, `"kind":"dense"`)
	assert.Contains(t, out, `"message":"separation oracle"`)
	assert.Contains(t, out, `"loss":1`)
}
