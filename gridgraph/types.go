// Package gridgraph turns a 2D grid of cell values into graph labeling
// samples, the usual setting for binary image segmentation: every cell is a
// node and neighboring cells are joined by an edge.
package gridgraph

import (
	"errors"

	"github.com/katalvlaran/graphlabel/feature"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrLabelShape indicates a labeling or mask that does not cover the grid.
	ErrLabelShape = errors.New("gridgraph: labeling does not match grid size")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// NodeFeatures maps a cell to its node feature vector.
type NodeFeatures func(x, y int, value float64) feature.Vector

// EdgeFeatures maps two neighboring cell values to the edge feature vector.
// The result must be non-negative.
type EdgeFeatures func(a, b float64) feature.Vector

// GridOptions contains tunable parameters for grid conversion.
type GridOptions struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// Node builds node vectors; DefaultGridOptions uses [value, 1].
	Node NodeFeatures
	// Edge builds edge vectors; DefaultGridOptions uses [1, exp(-|a-b|)].
	Edge EdgeFeatures
}

// GridGraph is an immutable rectangular grid. CellValues[y][x] holds the
// input value of cell (x, y); cells are indexed row-major.
type GridGraph struct {
	Width, Height int
	CellValues    [][]float64
	Conn          Connectivity

	opts            GridOptions
	neighborOffsets [][2]int
}
