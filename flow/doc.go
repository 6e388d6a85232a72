// Package flow implements maximum-flow and minimum-cut algorithms on graphs
// represented by *core.Graph with real-valued (float64) capacities.
//
// The key algorithms offered are:
//
//   - Dinic
//     Method: level graph construction + blocking-flow via DFS.
//     Time:   O(V² · E); much faster in practice on the shallow, bipartite-like
//     networks produced by graph-cut energy minimization.
//
//   - Edmonds–Karp
//     Method: breadth-first search for shortest (fewest-edge) augmenting paths.
//     Time:   O(V · E²).
//
//   - MinCut
//     Runs either algorithm, then collects the vertices reachable from the
//     source in the residual graph (package bfs). That set is the unique
//     inclusion-minimal source side of every minimum cut, so the partition
//     does not depend on which algorithm produced the flow.
//
// # Graph Support
//
//	– Directed and undirected edges (undirected edges carry capacity both ways).
//	– Parallel edges are aggregated.
//	– Loops are ignored.
//	– Capacities ≤ Epsilon are treated as zero; capacities < -Epsilon are an EdgeError.
//
// # Determinism
//
// Every search iterates neighbors in sorted order, so for a fixed input the
// augmentations, the residual graph and the cut are reproducible.
//
// # Errors
//
//	ErrSourceNotFound - if the source vertex is missing in the input graph.
//	ErrSinkNotFound   - if the sink vertex is missing.
//	ErrSameSourceSink - if source == sink.
//	EdgeError         - if a negative capacity (beyond Epsilon) is encountered.
//	context.Canceled / context.DeadlineExceeded - if opts.Ctx is canceled.
package flow
