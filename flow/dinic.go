package flow

import (
	"context"
	"math"

	"github.com/katalvlaran/graphlabel/core"
)

// Dinic computes the maximum flow from `source` to `sink` in the
// weighted graph `g` using Dinic's algorithm (level graph + blocking flows).
//
// It returns:
//   - maxFlow       : the total flow value
//   - residualGraph : a directed *core.Graph of remaining capacities
//   - err           : ErrSourceNotFound, ErrSinkNotFound, ErrSameSourceSink,
//     EdgeError, or context cancellation error
//
// Steps:
//  1. Normalize options and capture context (O(1)).
//  2. Validate that `source` and `sink` exist in `g` (O(1)).
//  3. Build the residual network via buildResidual.
//  4. Repeat until no more augmenting paths:
//     a. Check for cancellation.
//     b. BFS to build the level graph.
//     c. If sink unreachable, break.
//     d. DFS-based blocking flow pushes until none remains,
//     optionally rebuilding level graph every LevelRebuildInterval augmentations.
//  5. Construct final residual graph.
//
// Neighbor lists are sorted, so for a given input the sequence of
// augmentations (and thus the residual graph) is reproducible.
//
// Complexity:
//
//	Time:   O(V² · E) in general.
//	Memory: O(V + E).
func Dinic(
	g *core.Graph,
	source, sink string,
	opts FlowOptions,
) (maxFlow float64, residualGraph *core.Graph, err error) {
	// 1) Normalize options
	opts.normalize()
	ctx := opts.Ctx

	// 2) Validate presence of source and sink
	if err = checkTerminals(g, source, sink); err != nil {
		return 0, nil, err
	}

	// 3) Residual capacities
	net, err := buildResidual(g, opts)
	if err != nil {
		return 0, nil, err
	}

	// 4) Main loop: level graph + blocking flows
	augmentCount := 0
	for {
		if err = ctx.Err(); err != nil {
			return maxFlow, nil, err
		}

		level := net.levels(source, opts.Epsilon)
		if _, ok := level[sink]; !ok {
			break
		}

		iter := make(map[string]int, len(net.vertices))
		for {
			if err = ctx.Err(); err != nil {
				return maxFlow, nil, err
			}
			pushed := net.dinicPush(ctx, level, iter, source, sink, math.Inf(1), opts.Epsilon)
			if pushed <= 0 {
				break
			}
			maxFlow += pushed
			augmentCount++
			opts.logAugment(AlgorithmDinic, pushed, maxFlow)
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	// 5) Residual graph
	residualGraph, err = net.toGraph(opts.Epsilon)
	if err != nil {
		return maxFlow, nil, err
	}

	return maxFlow, residualGraph, nil
}

// levels returns the BFS distance from source over arcs with capacity > eps.
// Vertices absent from the map are unreachable.
func (r *residualNet) levels(source string, eps float64) map[string]int {
	level := map[string]int{source: 0}
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range r.adj[u] {
			if _, seen := level[v]; seen || r.capMap[u][v] <= eps {
				continue
			}
			level[v] = level[u] + 1
			queue = append(queue, v)
		}
	}

	return level
}

// dinicPush recursively pushes flow along the level graph, updating capMap
// in-place, and returns the amount actually sent.
func (r *residualNet) dinicPush(
	ctx context.Context,
	level map[string]int,
	iter map[string]int,
	u, sink string,
	available, eps float64,
) float64 {
	if ctx.Err() != nil {
		return 0
	}
	if u == sink {
		return available
	}
	nbrs := r.adj[u]
	for ; iter[u] < len(nbrs); iter[u]++ {
		v := nbrs[iter[u]]
		capUV := r.capMap[u][v]
		lv, ok := level[v]
		if !ok || lv != level[u]+1 || capUV <= eps {
			continue
		}
		send := math.Min(available, capUV)
		pushed := r.dinicPush(ctx, level, iter, v, sink, send, eps)
		if pushed > 0 {
			r.capMap[u][v] -= pushed
			r.capMap[v][u] += pushed

			return pushed
		}
	}

	return 0
}
