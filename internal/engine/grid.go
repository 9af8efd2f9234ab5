package engine

import "fmt"

// Default board dimensions.
const (
	DefaultRows    = 20
	DefaultColumns = 10
)

// Grid is the playfield. Row 0 is the top row; pieces fall toward larger y.
type Grid struct {
	rows    int
	columns int
	cells   [][]Cell
}

// NewGrid allocates an empty grid. Panics on non-positive dimensions.
func NewGrid(rows, columns int) *Grid {
	if rows <= 0 || columns <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", rows, columns))
	}
	g := &Grid{rows: rows, columns: columns}
	g.cells = make([][]Cell, rows)
	for y := range g.cells {
		g.cells[y] = make([]Cell, columns)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.columns && y >= 0 && y < g.rows
}

func (g *Grid) mustBeInBounds(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("engine: cell (%d, %d) outside %dx%d grid", x, y, g.columns, g.rows))
	}
}

// Get returns the cell at (x, y). Panics when out of bounds.
func (g *Grid) Get(x, y int) Cell {
	g.mustBeInBounds(x, y)
	return g.cells[y][x]
}

// Set writes the cell at (x, y). Panics when out of bounds.
func (g *Grid) Set(x, y int, c Cell) {
	g.mustBeInBounds(x, y)
	g.cells[y][x] = c
}

// IsRowFull reports whether every cell of row y is occupied.
func (g *Grid) IsRowFull(y int) bool {
	g.mustBeInBounds(0, y)
	for _, c := range g.cells[y] {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// ClearRow removes row y, shifts every row above it down by one and inserts
// an empty row at the top.
func (g *Grid) ClearRow(y int) {
	g.mustBeInBounds(0, y)
	removed := g.cells[y]
	copy(g.cells[1:y+1], g.cells[:y])
	for x := range removed {
		removed[x] = CellEmpty
	}
	g.cells[0] = removed
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = CellEmpty
		}
	}
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for y := range g.cells {
		for _, c := range g.cells[y] {
			if c != CellEmpty {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.rows, g.columns)
	for y := range g.cells {
		copy(out.cells[y], g.cells[y])
	}
	return out
}

// Cells returns a copy of the cell matrix, indexed [y][x].
func (g *Grid) Cells() [][]Cell {
	return g.Clone().cells
}
