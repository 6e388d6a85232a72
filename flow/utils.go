package flow

import (
	"sort"

	"github.com/katalvlaran/graphlabel/core"
)

// residualNet is the working state shared by the max-flow algorithms:
// capMap[u][v] holds the residual capacity u→v, and adj[u] lists every v
// with an arc in either direction, sorted, so that searches are deterministic.
type residualNet struct {
	vertices []string
	capMap   map[string]map[string]float64
	adj      map[string][]string
}

// buildResidual constructs the residual capacities of g, aggregating parallel
// edges and ignoring loops. Undirected edges contribute capacity both ways.
//
// Steps:
//  1. Initialize capMap with one inner map per vertex (O(V)).
//  2. For each vertex u in sorted order, and each incident edge e:
//     skip loops, reject capacities below -Epsilon with EdgeError,
//     add e.Weight to capMap[u][v] where v is the other endpoint.
//  3. Make every reverse arc present (zero capacity) and sort adjacency.
//
// Complexity: O(V + E log d_max).
func buildResidual(g *core.Graph, opts FlowOptions) (*residualNet, error) {
	if err := opts.Ctx.Err(); err != nil {
		return nil, err
	}

	vertices := g.Vertices()
	capMap := make(map[string]map[string]float64, len(vertices))
	for _, u := range vertices {
		capMap[u] = make(map[string]float64)
	}

	for _, u := range vertices {
		if err := opts.Ctx.Err(); err != nil {
			return nil, err
		}
		neighbors, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, e := range neighbors {
			v := e.To
			if v == u {
				v = e.From
			}
			if e.Weight < -opts.Epsilon {
				return nil, EdgeError{From: u, To: v, Cap: e.Weight}
			}
			if e.Weight > opts.Epsilon {
				capMap[u][v] += e.Weight
			}
		}
	}

	// Reverse arcs exist from the start so augmentations never allocate.
	for u, inner := range capMap {
		for v := range inner {
			if _, ok := capMap[v][u]; !ok {
				capMap[v][u] = 0
			}
		}
	}

	adj := make(map[string][]string, len(vertices))
	for _, u := range vertices {
		nbrs := make([]string, 0, len(capMap[u]))
		for v := range capMap[u] {
			nbrs = append(nbrs, v)
		}
		sort.Strings(nbrs)
		adj[u] = nbrs
	}

	return &residualNet{vertices: vertices, capMap: capMap, adj: adj}, nil
}

// toGraph materializes the residual network as a directed weighted *core.Graph
// holding every arc with capacity strictly greater than Epsilon.
//
// Complexity: O(V + E_res).
func (r *residualNet) toGraph(eps float64) (*core.Graph, error) {
	residual := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, u := range r.vertices {
		if err := residual.AddVertex(u); err != nil {
			return nil, err
		}
	}
	for _, u := range r.vertices {
		for _, v := range r.adj[u] {
			if c := r.capMap[u][v]; c > eps {
				if _, err := residual.AddEdge(u, v, c); err != nil {
					return nil, err
				}
			}
		}
	}

	return residual, nil
}

// checkTerminals validates presence of source and sink.
func checkTerminals(g *core.Graph, source, sink string) error {
	if !g.HasVertex(source) {
		return ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return ErrSinkNotFound
	}
	if source == sink {
		return ErrSameSourceSink
	}

	return nil
}
