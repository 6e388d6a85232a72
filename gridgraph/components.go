package gridgraph

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/graphlabel/bfs"
	"github.com/katalvlaran/graphlabel/core"
	"github.com/katalvlaran/graphlabel/labeling"
)

// ToCoreGraph converts the grid into an unweighted, undirected *core.Graph.
// Each cell becomes a vertex with ID strconv.Itoa(Index(x,y)) and metadata
// {x, y, value}; neighbors under gg.Conn are joined by an edge.
// Complexity: O(W×H×d).
func (gg *GridGraph) ToCoreGraph() *core.Graph {
	g := core.NewGraph()
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			_ = g.AddVertex(strconv.Itoa(gg.Index(x, y)))
		}
	}
	_ = gg.eachPair(func(u, v int) error {
		_, err := g.AddEdge(strconv.Itoa(u), strconv.Itoa(v), 0)

		return err
	})

	return g
}

// Components returns the connected regions of cells labeled true, as
// row-major index lists. Regions are ordered by their smallest index and
// each region is sorted ascending.
// Complexity: O(W×H×d).
func (gg *GridGraph) Components(l labeling.Labeling) ([][]int, error) {
	if len(l) != gg.Size() {
		return nil, fmt.Errorf("%w: %d labels for %d cells", ErrLabelShape, len(l), gg.Size())
	}

	g := gg.ToCoreGraph()
	inside := func(_, neighbor string) bool {
		i, err := strconv.Atoi(neighbor)
		return err == nil && l[i]
	}

	seen := make([]bool, len(l))
	var comps [][]int
	for i, on := range l {
		if !on || seen[i] {
			continue
		}
		var comp []int
		collect := func(id string, _ int) error {
			j, err := strconv.Atoi(id)
			if err != nil {
				return err
			}
			seen[j] = true
			comp = append(comp, j)

			return nil
		}
		if _, err := bfs.BFS(g, strconv.Itoa(i), bfs.WithFilterNeighbor(inside), bfs.WithOnVisit(collect)); err != nil {
			return nil, err
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}
