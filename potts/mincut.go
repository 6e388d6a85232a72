package potts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphlabel/core"
	"github.com/katalvlaran/graphlabel/flow"
)

// Terminal vertex IDs of the flow network. Node vertices use their decimal
// index, so these never collide.
const (
	SourceID = "source"
	SinkID   = "sink"
)

// Option configures a MinCutSolver.
type Option func(*MinCutSolver)

// WithAlgorithm selects the max-flow algorithm (default flow.AlgorithmDinic).
func WithAlgorithm(a flow.Algorithm) Option {
	return func(s *MinCutSolver) { s.opts.Algorithm = a }
}

// WithEpsilon sets the capacity threshold below which arcs are ignored.
func WithEpsilon(eps float64) Option {
	return func(s *MinCutSolver) {
		if eps > 0 {
			s.opts.Epsilon = eps
		}
	}
}

// WithLogger logs every augmentation of the underlying max-flow at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(s *MinCutSolver) {
		s.opts.Logger = &l
		s.opts.Verbose = true
	}
}

// MinCutSolver solves Potts models by the classic graph-cut reduction.
//
// Network: for node i with potential u_i, an arc source→i of capacity u_i when
// u_i > 0, or i→sink of capacity -u_i when u_i < 0; for edge (i, j) arcs i→j
// and j→i of capacity w_ij. Cutting source→i costs the potential forfeited by
// labeling i false; cutting i→sink costs the negative potential accepted by
// labeling i true; cutting i→j costs the lost agreement bonus.
//
// Tie-breaking: node i is labeled true iff it is reachable from the source in
// the residual network. That source side is the inclusion-minimal minimum
// cut, so among all maximizers the solver returns the one with the fewest
// true labels, independent of the max-flow algorithm.
//
// Cost: every Solve builds a string-keyed core.Graph and a map-of-maps
// residual network before running max-flow, so hashing and allocation
// dominate on large models. Dinic is O(V²E) on top of that. Callers that
// solve many large models should benchmark before relying on it in a hot loop.
type MinCutSolver struct {
	opts flow.FlowOptions
}

// NewMinCutSolver returns a solver configured by opts.
func NewMinCutSolver(opts ...Option) *MinCutSolver {
	s := &MinCutSolver{opts: flow.DefaultOptions()}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Solve implements Solver.
//
// Errors: ErrNonFinite, ErrNegativeEdgeWeight, or a wrapped flow error.
// Complexity: one max-flow over V+2 vertices and V+2E arcs.
func (s *MinCutSolver) Solve(g *Graph) ([]bool, error) {
	network, err := s.network(g)
	if err != nil {
		return nil, err
	}

	opts := s.opts
	opts.Ctx = context.Background()
	cut, err := flow.MinCut(network, SourceID, SinkID, opts)
	if err != nil {
		return nil, fmt.Errorf("potts: %w", err)
	}

	labels := make([]bool, g.NumNodes())
	for i := range labels {
		labels[i] = cut.OnSourceSide(strconv.Itoa(i))
	}

	return labels, nil
}

// network builds the s–t flow network of g.
func (s *MinCutSolver) network(g *Graph) (*core.Graph, error) {
	eps := s.opts.Epsilon
	net := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	if err := net.AddVertex(SourceID); err != nil {
		return nil, err
	}
	if err := net.AddVertex(SinkID); err != nil {
		return nil, err
	}

	ids := make([]string, g.NumNodes())
	for i := range ids {
		ids[i] = strconv.Itoa(i)
		if err := net.AddVertex(ids[i]); err != nil {
			return nil, err
		}
	}

	for i := 0; i < g.NumNodes(); i++ {
		u := g.Node(i)
		if err := checkFinite("potential of node", i, u); err != nil {
			return nil, err
		}
		switch {
		case u > eps:
			if _, err := net.AddEdge(SourceID, ids[i], u); err != nil {
				return nil, err
			}
		case u < -eps:
			if _, err := net.AddEdge(ids[i], SinkID, -u); err != nil {
				return nil, err
			}
		}

		for n := 0; n < g.NumNeighbors(i); n++ {
			j := g.Neighbor(i, n)
			if i >= j {
				continue
			}
			w := g.Edge(i, n)
			if err := checkFinite("weight of edge at node", i, w); err != nil {
				return nil, err
			}
			if w < -eps {
				return nil, fmt.Errorf("%w: edge %d-%d has weight %g", ErrNegativeEdgeWeight, i, j, w)
			}
			if w <= eps {
				continue
			}
			if _, err := net.AddEdge(ids[i], ids[j], w); err != nil {
				return nil, err
			}
			if _, err := net.AddEdge(ids[j], ids[i], w); err != nil {
				return nil, err
			}
		}
	}

	return net, nil
}
