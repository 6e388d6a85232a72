package flow

import (
	"fmt"

	"github.com/katalvlaran/graphlabel/bfs"
	"github.com/katalvlaran/graphlabel/core"
)

// Cut describes a minimum s–t cut.
//   - Value: capacity of the cut, equal to the maximum flow.
//   - Source: vertices reachable from the source in the final residual graph,
//     sorted ascending. This is the unique inclusion-minimal source side.
//   - Sink: all remaining vertices, sorted ascending.
type Cut struct {
	Value  float64
	Source []string
	Sink   []string

	sourceSet map[string]bool
}

// OnSourceSide reports whether id lies on the source side of the cut.
func (c *Cut) OnSourceSide(id string) bool { return c.sourceSet[id] }

// MinCut computes a minimum s–t cut of g: it runs the max-flow algorithm
// selected by opts.Algorithm and then walks the residual graph from source
// with bfs.BFS. Errors from either stage are returned unchanged.
func MinCut(g *core.Graph, source, sink string, opts FlowOptions) (*Cut, error) {
	opts.normalize()

	var (
		value    float64
		residual *core.Graph
		err      error
	)
	switch opts.Algorithm {
	case AlgorithmDinic:
		value, residual, err = Dinic(g, source, sink, opts)
	case AlgorithmEdmondsKarp:
		value, residual, err = EdmondsKarp(g, source, sink, opts)
	default:
		return nil, fmt.Errorf("flow: unknown algorithm %v", opts.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	reach, err := bfs.BFS(residual, source, bfs.WithContext(opts.Ctx))
	if err != nil {
		return nil, fmt.Errorf("flow: residual reachability: %w", err)
	}

	cut := &Cut{Value: value, sourceSet: make(map[string]bool, len(reach.Order))}
	for _, id := range residual.Vertices() {
		if reach.Reached(id) {
			cut.sourceSet[id] = true
			cut.Source = append(cut.Source, id)
		} else {
			cut.Sink = append(cut.Sink, id)
		}
	}

	return cut, nil
}
