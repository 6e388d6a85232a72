package gridgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/graphlabel/feature"
	"github.com/katalvlaran/graphlabel/labeling"
)

// DefaultGridOptions returns Conn4 with [value, 1] node vectors and
// [1, exp(-|a-b|)] edge vectors. The node bias lets a model learn a
// threshold; the second edge entry weakens smoothing across strong contrast.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Conn: Conn4,
		Node: func(_, _ int, v float64) feature.Vector { return feature.Dense{v, 1} },
		Edge: func(a, b float64) feature.Vector { return feature.Dense{1, math.Exp(-math.Abs(a - b))} },
	}
}

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice.
// It deep-copies the input. Nil feature functions fall back to the defaults.
// Complexity: O(W×H).
func NewGridGraph(values [][]float64, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	cells := make([][]float64, h)
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), w)
		}
		cells[y] = append([]float64(nil), row...)
	}

	def := DefaultGridOptions()
	if opts.Node == nil {
		opts.Node = def.Node
	}
	if opts.Edge == nil {
		opts.Edge = def.Edge
	}

	// Forward offsets only: each undirected pair is visited once.
	offsets := [][2]int{{1, 0}, {0, 1}}
	if opts.Conn == Conn8 {
		offsets = [][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	}

	return &GridGraph{
		Width:           w,
		Height:          h,
		CellValues:      cells,
		Conn:            opts.Conn,
		opts:            opts,
		neighborOffsets: offsets,
	}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// Index maps (x,y) to its row-major node index y*Width + x.
func (gg *GridGraph) Index(x, y int) int { return y*gg.Width + x }

// Coordinate converts a row-major node index back to (x,y).
func (gg *GridGraph) Coordinate(idx int) (x, y int) { return idx % gg.Width, idx / gg.Width }

// Size returns the number of cells.
func (gg *GridGraph) Size() int { return gg.Width * gg.Height }

// Sample converts the grid into a labeling sample. Node i is cell
// Coordinate(i); edges join neighbors under gg.Conn.
// Complexity: O(W×H×d).
func (gg *GridGraph) Sample() (*labeling.Sample, error) {
	s := labeling.NewSample()
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			s.AddNode(gg.opts.Node(x, y, gg.CellValues[y][x]))
		}
	}
	err := gg.eachPair(func(u, v int) error {
		ux, uy := gg.Coordinate(u)
		vx, vy := gg.Coordinate(v)

		return s.AddEdge(u, v, gg.opts.Edge(gg.CellValues[uy][ux], gg.CellValues[vy][vx]))
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Threshold labels cells whose value is at least t, for use as ground truth.
func (gg *GridGraph) Threshold(t float64) labeling.Labeling {
	out := make(labeling.Labeling, 0, gg.Size())
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			out = append(out, gg.CellValues[y][x] >= t)
		}
	}

	return out
}

// Mask reshapes a labeling into rows, the inverse of Threshold's layout.
func (gg *GridGraph) Mask(l labeling.Labeling) ([][]bool, error) {
	if len(l) != gg.Size() {
		return nil, fmt.Errorf("%w: %d labels for %d cells", ErrLabelShape, len(l), gg.Size())
	}
	rows := make([][]bool, gg.Height)
	for y := range rows {
		rows[y] = append([]bool(nil), l[y*gg.Width:(y+1)*gg.Width]...)
	}

	return rows, nil
}

// eachPair calls fn(u, v) once per neighboring pair with u < v.
func (gg *GridGraph) eachPair(fn func(u, v int) error) error {
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			for _, d := range gg.neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if !gg.InBounds(nx, ny) {
					continue
				}
				if err := fn(gg.Index(x, y), gg.Index(nx, ny)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
