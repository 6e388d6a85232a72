// Package core provides a thread-safe in-memory Graph used as the flow-network
// container of the graphlabel module.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Weighted vs. unweighted edges (WithWeighted), with float64 weights
//   - No self-loops and no parallel edges; repeated arcs are expressed as
//     summed capacities by the caller
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Atomic Edge.ID generation ("e1", "e2", ...)
//
// Vertices(), Edges(), Neighbors() and NeighborIDs() all return sorted results,
// so algorithms built on top (flow, bfs) iterate deterministically.
//
//	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
//	_, _ = g.AddEdge("source", "0", 1.5)
package core
