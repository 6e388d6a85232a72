// Package graph provides an index-addressed undirected graph whose nodes and
// edges carry arbitrary payloads.
//
// Nodes are numbered 0..NumNodes()-1 in insertion order. Each node keeps an
// ordered neighbor list; the n-th neighbor entry of node i exposes both the
// neighbor's index and the payload of the connecting edge. An undirected edge
// is stored once and shared by the neighbor entries of both endpoints, so
// SetEdge from either side updates the same payload.
//
// A Graph is not safe for concurrent mutation. Once built, any number of
// goroutines may read it concurrently.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction.
var (
	// ErrNodeOutOfRange indicates a node index outside [0, NumNodes()).
	ErrNodeOutOfRange = errors.New("graph: node index out of range")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("graph: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a second edge between the same pair of nodes.
	ErrMultiEdgeNotAllowed = errors.New("graph: multi-edges not allowed")
)

// Option configures a Graph before creation.
type Option func(*config)

type config struct {
	allowLoops bool
}

// WithLoops permits self-loops (edges from a node to itself).
// A loop appears once in its node's neighbor list.
func WithLoops() Option {
	return func(c *config) { c.allowLoops = true }
}

// neighbor is one entry of a node's adjacency list.
type neighbor struct {
	node int // index of the adjacent node
	edge int // index into Graph.edges
}

// edge is the shared record of one undirected edge.
type edge[E any] struct {
	a, b int
	data E
}

// Graph is an undirected graph with node payloads of type N and edge
// payloads of type E.
type Graph[N, E any] struct {
	cfg   config
	nodes []N
	adj   [][]neighbor
	edges []edge[E]
}

// New creates an empty Graph. By default self-loops are rejected.
func New[N, E any](opts ...Option) *Graph[N, E] {
	g := &Graph[N, E]{}
	for _, opt := range opts {
		opt(&g.cfg)
	}

	return g
}

// AddNode appends a node carrying data and returns its index.
// Complexity: O(1) amortized.
func (g *Graph[N, E]) AddNode(data N) int {
	g.nodes = append(g.nodes, data)
	g.adj = append(g.adj, nil)

	return len(g.nodes) - 1
}

// AddEdge connects nodes i and j with an undirected edge carrying data.
//
// Errors: ErrNodeOutOfRange, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
// Complexity: O(deg(i)) for the duplicate check.
func (g *Graph[N, E]) AddEdge(i, j int, data E) error {
	if err := g.check(i); err != nil {
		return err
	}
	if err := g.check(j); err != nil {
		return err
	}
	if i == j && !g.cfg.allowLoops {
		return fmt.Errorf("%w: node %d", ErrLoopNotAllowed, i)
	}
	if g.HasEdge(i, j) {
		return fmt.Errorf("%w: %d-%d", ErrMultiEdgeNotAllowed, i, j)
	}

	k := len(g.edges)
	g.edges = append(g.edges, edge[E]{a: i, b: j, data: data})
	g.adj[i] = append(g.adj[i], neighbor{node: j, edge: k})
	if i != j {
		g.adj[j] = append(g.adj[j], neighbor{node: i, edge: k})
	}

	return nil
}

// HasEdge reports whether an edge i–j exists.
func (g *Graph[N, E]) HasEdge(i, j int) bool {
	if g.check(i) != nil || g.check(j) != nil {
		return false
	}
	for _, nb := range g.adj[i] {
		if nb.node == j {
			return true
		}
	}

	return false
}

// NumNodes returns the number of nodes.
func (g *Graph[N, E]) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of undirected edges.
func (g *Graph[N, E]) NumEdges() int { return len(g.edges) }

// Node returns the payload of node i. It panics if i is out of range,
// like a slice index.
func (g *Graph[N, E]) Node(i int) N { return g.nodes[i] }

// SetNode replaces the payload of node i.
func (g *Graph[N, E]) SetNode(i int, data N) { g.nodes[i] = data }

// NumNeighbors returns the number of neighbor entries of node i.
func (g *Graph[N, E]) NumNeighbors(i int) int { return len(g.adj[i]) }

// Neighbor returns the index of the n-th neighbor of node i.
func (g *Graph[N, E]) Neighbor(i, n int) int { return g.adj[i][n].node }

// Edge returns the payload of the edge between node i and its n-th neighbor.
func (g *Graph[N, E]) Edge(i, n int) E { return g.edges[g.adj[i][n].edge].data }

// SetEdge replaces the payload of the edge between node i and its n-th
// neighbor. The change is visible from both endpoints.
func (g *Graph[N, E]) SetEdge(i, n int, data E) { g.edges[g.adj[i][n].edge].data = data }

// HasSelfLoop reports whether any node is connected to itself.
func (g *Graph[N, E]) HasSelfLoop() bool {
	for _, e := range g.edges {
		if e.a == e.b {
			return true
		}
	}

	return false
}

func (g *Graph[N, E]) check(i int) error {
	if i < 0 || i >= len(g.nodes) {
		return fmt.Errorf("%w: %d (have %d nodes)", ErrNodeOutOfRange, i, len(g.nodes))
	}

	return nil
}

// CopyStructure returns a graph with the same nodes, edges and neighbor
// ordering as src but zero-valued payloads of new types. Loops present in
// src are preserved.
//
// Complexity: O(V + E).
func CopyStructure[N2, E2, N, E any](src *Graph[N, E]) *Graph[N2, E2] {
	dst := &Graph[N2, E2]{
		cfg:   src.cfg,
		nodes: make([]N2, len(src.nodes)),
		adj:   make([][]neighbor, len(src.adj)),
		edges: make([]edge[E2], len(src.edges)),
	}
	for i, nbrs := range src.adj {
		dst.adj[i] = append([]neighbor(nil), nbrs...)
	}
	for k, e := range src.edges {
		dst.edges[k] = edge[E2]{a: e.a, b: e.b}
	}

	return dst
}
