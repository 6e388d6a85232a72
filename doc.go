// Package graphlabel trains binary graph labelers with a structural SVM.
//
// The module provides the problem a cutting-plane trainer consumes: given
// graphs whose nodes and edges carry feature vectors, plus a true/false
// label per node, it exposes the joint feature map psi and a loss-augmented
// separation oracle solved exactly by s–t minimum cut.
//
// Packages, leaves first:
//
//	feature/    dense and sparse feature vectors, dot products, psi accumulators
//	graph/      generic indexed undirected graph with shared edge payloads
//	core/       string-keyed thread-safe graph used for flow networks
//	bfs/        breadth-first traversal over core graphs
//	flow/       max-flow (Dinic, Edmonds–Karp) and minimum cuts
//	potts/      binary Potts MAP inference by minimum cut
//	labeling/   dataset validation, dimension inference, psi, separation oracle
//	gridgraph/  labeling samples from 2D grids (image segmentation)
//
// The graphlabel command (cmd/graphlabel) validates a YAML dataset and runs
// the oracle for a weight vector.
package graphlabel
