// Package dataset reads graph labeling datasets and weight vectors from YAML.
//
// A dataset file names its representation and lists samples:
//
//	representation: dense        # or sparse
//	samples:
//	  - labels: [true, true, false]
//	    nodes:
//	      - [1, 0]
//	      - [1, 0]
//	      - [1, 0]
//	    edges:
//	      - {from: 0, to: 1, vector: [1]}
//	      - {from: 1, to: 2, vector: [1]}
//
// Sparse vectors are lists of [index, value] pairs, e.g. [[0, 1.5], [4, 2]].
// A weight file is either a bare list of numbers or {weights: [...]}.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/graph"
	"github.com/katalvlaran/graphlabel/labeling"
)

// ErrFormat is wrapped by every malformed-file error.
var ErrFormat = errors.New("dataset: malformed file")

// Dataset is a decoded dataset file, ready for labeling.New.
type Dataset struct {
	Kind    feature.Kind
	Samples []*labeling.Sample
	Labels  []labeling.Labeling
}

type fileDataset struct {
	Representation string       `yaml:"representation"`
	Samples        []fileSample `yaml:"samples"`
}

type fileSample struct {
	Labels []bool      `yaml:"labels"`
	Nodes  []yaml.Node `yaml:"nodes"`
	Edges  []fileEdge  `yaml:"edges"`
}

type fileEdge struct {
	From   int       `yaml:"from"`
	To     int       `yaml:"to"`
	Vector yaml.Node `yaml:"vector"`
}

// ReadFile decodes the dataset file at path.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a dataset. Structural errors (edge endpoints out of range,
// duplicate edges) are reported here as ErrFormat; semantic checks are left to
// labeling.Validate.
func Read(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw fileDataset
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	kind, err := parseKind(raw.Representation)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Kind: kind}
	for si, fs := range raw.Samples {
		// Loops are accepted here so that labeling.Validate reports them.
		s := graph.New[feature.Vector, feature.Vector](graph.WithLoops())
		for ni := range fs.Nodes {
			v, err := decodeVector(kind, &fs.Nodes[ni])
			if err != nil {
				return nil, fmt.Errorf("sample %d node %d: %w", si, ni, err)
			}
			s.AddNode(v)
		}
		for ei := range fs.Edges {
			e := &fs.Edges[ei]
			v, err := decodeVector(kind, &e.Vector)
			if err != nil {
				return nil, fmt.Errorf("sample %d edge %d: %w", si, ei, err)
			}
			if err := s.AddEdge(e.From, e.To, v); err != nil {
				return nil, fmt.Errorf("%w: sample %d edge %d: %v", ErrFormat, si, ei, err)
			}
		}
		ds.Samples = append(ds.Samples, s)
		ds.Labels = append(ds.Labels, labeling.Labeling(fs.Labels))
	}

	return ds, nil
}

func parseKind(name string) (feature.Kind, error) {
	switch name {
	case "", "dense":
		return feature.KindDense, nil
	case "sparse":
		return feature.KindSparse, nil
	default:
		return 0, fmt.Errorf("%w: unknown representation %q", ErrFormat, name)
	}
}

func decodeVector(kind feature.Kind, n *yaml.Node) (feature.Vector, error) {
	if kind == feature.KindDense {
		var d []float64
		if err := n.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, n.Line, err)
		}

		return feature.Dense(d), nil
	}

	var pairs [][]float64
	if err := n.Decode(&pairs); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, n.Line, err)
	}
	s := make(feature.Sparse, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: line %d: sparse entry needs [index, value], got %v", ErrFormat, n.Line, p)
		}
		if p[0] != math.Trunc(p[0]) || p[0] > math.MaxInt32 {
			return nil, fmt.Errorf("%w: line %d: sparse index %v is not an integer", ErrFormat, n.Line, p[0])
		}
		s = append(s, feature.Pair{Index: int(p[0]), Value: p[1]})
	}

	return s, nil
}

type fileWeights struct {
	Weights []float64 `yaml:"weights"`
}

// ReadWeightsFile decodes the weight file at path.
func ReadWeightsFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadWeights(f)
}

// ReadWeights decodes a weight vector given as a bare list or under a
// "weights" key.
func ReadWeights(r io.Reader) ([]float64, error) {
	var n yaml.Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(n.Content) == 0 {
		return nil, fmt.Errorf("%w: empty weight file", ErrFormat)
	}

	root := n.Content[0]
	if root.Kind == yaml.SequenceNode {
		var w []float64
		if err := root.Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}

		return w, nil
	}

	var fw fileWeights
	if err := root.Decode(&fw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if fw.Weights == nil {
		return nil, fmt.Errorf("%w: no weights key", ErrFormat)
	}

	return fw.Weights, nil
}
