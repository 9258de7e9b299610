// Package grid lays out labelled cells over a screen of a given size
package grid

import (
	"errors"

	"github.com/lixenwraith/vencoord/label"
)

// ErrInvalidGap indicates a non-positive cell gap
var ErrInvalidGap = errors.New("grid: cell gap must be at least 1")

// Geometry describes the overlay surface in screen cells.
// GapX and GapY are the spacing between neighbouring grid points.
type Geometry struct {
	Width  int
	Height int
	GapX   int
	GapY   int
}

// Placement is one grid point and the label drawn for it
type Placement struct {
	Index label.Index
	X, Y  int // Screen cell of the grid point
	Text  string
}

// Validate rejects gaps smaller than one cell
func (g Geometry) Validate() error {
	if g.GapX < 1 || g.GapY < 1 {
		return ErrInvalidGap
	}
	return nil
}

// Columns returns the number of grid columns that fit the width
func (g Geometry) Columns() int {
	if g.GapX < 1 || g.Width <= 0 {
		return 0
	}
	return g.Width / g.GapX
}

// Rows returns the number of grid rows that fit the height
func (g Geometry) Rows() int {
	if g.GapY < 1 || g.Height <= 0 {
		return 0
	}
	return g.Height / g.GapY
}

// Cells returns Columns() * Rows()
func (g Geometry) Cells() int {
	return g.Columns() * g.Rows()
}

// Origin returns the screen cell of the grid point at ix
func (g Geometry) Origin(ix label.Index) (x, y int) {
	return int(ix.Col) * g.GapX, int(ix.Row) * g.GapY
}

// Placements builds one placement per grid point, column by column.
// Labels are encoded fresh on every call; callers rebuild after a resize.
func (g Geometry) Placements() []Placement {
	cols, rows := g.Columns(), g.Rows()
	if cols == 0 || rows == 0 {
		return nil
	}

	out := make([]Placement, 0, cols*rows)
	buf := make([]byte, 0, 16)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			ix := label.Index{Col: uint32(c), Row: uint32(r)}
			buf = label.Append(buf[:0], ix)
			x, y := g.Origin(ix)
			out = append(out, Placement{
				Index: ix,
				X:     x,
				Y:     y,
				Text:  string(buf),
			})
		}
	}
	return out
}

// MaxLabelLen returns the length of the widest label in the grid
func (g Geometry) MaxLabelLen() int {
	cols, rows := g.Columns(), g.Rows()
	if cols == 0 || rows == 0 {
		return 0
	}
	// Segment length is monotonic in the value, so the last cell is widest
	return label.Len(label.Index{Col: uint32(cols - 1), Row: uint32(rows - 1)})
}

// Clipped reports whether a marker plus the widest label overruns GapX,
// which makes neighbouring labels overlap
func (g Geometry) Clipped() bool {
	n := g.MaxLabelLen()
	return n > 0 && 1+n > g.GapX
}
