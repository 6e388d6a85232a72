package flow

import (
	"math"

	"github.com/katalvlaran/graphlabel/core"
)

// EdmondsKarp computes the maximum flow from source→sink
// using the Edmonds–Karp algorithm (BFS for shortest augmenting paths).
//
// It returns:
//   - maxFlow: total flow value
//   - residual: residual-capacity graph after flow
//   - err: non-nil on missing vertices, negative capacities or cancellation.
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func EdmondsKarp(
	g *core.Graph,
	source, sink string,
	opts FlowOptions,
) (maxFlow float64, residual *core.Graph, err error) {
	opts.normalize()
	ctx := opts.Ctx

	if err = checkTerminals(g, source, sink); err != nil {
		return 0, nil, err
	}

	net, err := buildResidual(g, opts)
	if err != nil {
		return 0, nil, err
	}

	for {
		if err = ctx.Err(); err != nil {
			return maxFlow, nil, err
		}
		path, bottle := net.shortestAugmentingPath(source, sink, opts.Epsilon)
		if len(path) == 0 || bottle <= opts.Epsilon {
			break
		}
		for i := 0; i < len(path)-1; i++ {
			u, v := path[i], path[i+1]
			net.capMap[u][v] -= bottle
			net.capMap[v][u] += bottle
		}
		maxFlow += bottle
		opts.logAugment(AlgorithmEdmondsKarp, bottle, maxFlow)
	}

	residual, err = net.toGraph(opts.Epsilon)
	if err != nil {
		return maxFlow, nil, err
	}

	return maxFlow, residual, nil
}

// shortestAugmentingPath finds the fewest-arc path source→sink with capacity
// > eps on every arc, and returns it with its bottleneck. Returns nil if none.
func (r *residualNet) shortestAugmentingPath(source, sink string, eps float64) ([]string, float64) {
	parent := map[string]string{}
	bottleneck := map[string]float64{source: math.Inf(1)}
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range r.adj[u] {
			if _, seen := bottleneck[v]; seen {
				continue
			}
			c := r.capMap[u][v]
			if c <= eps {
				continue
			}
			parent[v] = u
			bottleneck[v] = math.Min(bottleneck[u], c)
			if v == sink {
				path := []string{sink}
				for cur := sink; cur != source; {
					cur = parent[cur]
					path = append(path, cur)
				}
				for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
					path[a], path[b] = path[b], path[a]
				}

				return path, bottleneck[sink]
			}
			queue = append(queue, v)
		}
	}

	return nil, 0
}
