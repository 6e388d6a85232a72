package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/internal/dataset"
	"github.com/katalvlaran/graphlabel/labeling"
)

const densePath = `
representation: dense
samples:
  - labels: [true, true, false]
    nodes:
      - [1, 0]
      - [1, 0]
      - [1, 0]
    edges:
      - {from: 0, to: 1, vector: [1]}
      - {from: 1, to: 2, vector: [1]}
`

const sparsePath = `
representation: sparse
samples:
  - labels: [true, false]
    nodes:
      - [[0, 1], [3, 0.5]]
      - [[2, -1]]
    edges:
      - {from: 0, to: 1, vector: [[1, 2]]}
`

func TestRead_Dense(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(densePath))
	require.NoError(t, err)
	assert.Equal(t, feature.KindDense, ds.Kind)
	require.Len(t, ds.Samples, 1)
	assert.Equal(t, []labeling.Labeling{{true, true, false}}, ds.Labels)

	s := ds.Samples[0]
	assert.Equal(t, 3, s.NumNodes())
	assert.Equal(t, 2, s.NumEdges())
	assert.Equal(t, feature.Dense{1, 0}, s.Node(2))

	p, err := labeling.New(ds.Samples, ds.Labels)
	require.NoError(t, err)
	psi, err := p.TruthFeatureVector(0)
	require.NoError(t, err)
	assert.Equal(t, feature.Dense{-1, 2, 0}, psi)
}

func TestRead_Sparse(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(sparsePath))
	require.NoError(t, err)
	assert.Equal(t, feature.KindSparse, ds.Kind)

	s := ds.Samples[0]
	assert.Equal(t, feature.Sparse{{Index: 0, Value: 1}, {Index: 3, Value: 0.5}}, s.Node(0))
	assert.Equal(t, feature.Sparse{{Index: 1, Value: 2}}, s.Edge(0, 0))

	p, err := labeling.New(ds.Samples, ds.Labels)
	require.NoError(t, err)
	assert.Equal(t, labeling.Dimensions{Node: 4, Edge: 2}, p.Dimensions())
}

func TestRead_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown representation": "representation: csr\nsamples: []\n",
		"unknown key":            "representation: dense\nsampels: []\n",
		"bad dense vector":       "samples:\n  - labels: [true]\n    nodes: [[a, b]]\n",
		"bad sparse pair":        "representation: sparse\nsamples:\n  - labels: [true]\n    nodes: [[[1, 2, 3]]]\n",
		"fractional index":       "representation: sparse\nsamples:\n  - labels: [true]\n    nodes: [[[1.5, 2]]]\n",
		"edge out of range":      "samples:\n  - labels: [true]\n    nodes: [[1]]\n    edges: [{from: 0, to: 3, vector: [1]}]\n",
		"missing edge vector":    "samples:\n  - labels: [true, true]\n    nodes: [[1], [1]]\n    edges: [{from: 0, to: 1}]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.Read(strings.NewReader(body))
			require.ErrorIs(t, err, dataset.ErrFormat)
		})
	}
}

// TestRead_LeavesSemanticsToValidate decodes files that only
// labeling.Validate rejects.
func TestRead_LeavesSemanticsToValidate(t *testing.T) {
	for _, body := range []string{
		"samples:\n  - labels: [true]\n    nodes: [[1], [1]]\n",
		"samples:\n  - labels: [true]\n    nodes: [[1]]\n    edges: [{from: 0, to: 0, vector: [1]}]\n",
		"samples:\n  - labels: [true, true]\n    nodes: [[1], [1]]\n    edges: [{from: 0, to: 1, vector: [-1]}]\n",
	} {
		ds, err := dataset.Read(strings.NewReader(body))
		require.NoError(t, err)
		require.ErrorIs(t, labeling.Validate(ds.Samples, ds.Labels), labeling.ErrInvalidDataset)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "path.yaml")
	require.NoError(t, os.WriteFile(path, []byte(densePath), 0o600))

	ds, err := dataset.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, ds.Samples, 1)

	_, err = dataset.ReadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadWeights(t *testing.T) {
	w, err := dataset.ReadWeights(strings.NewReader("[0.5, 2, 0]\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 2, 0}, w)

	w, err = dataset.ReadWeights(strings.NewReader("weights: [1, -1]\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1}, w)

	for _, body := range []string{"", "other: 1\n", "[x]\n", "weights: nope\n"} {
		_, err := dataset.ReadWeights(strings.NewReader(body))
		assert.ErrorIs(t, err, dataset.ErrFormat, "body %q", body)
	}

	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[3]\n"), 0o600))
	w, err = dataset.ReadWeightsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, w)
}
