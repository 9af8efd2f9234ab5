package engine

// Point is an absolute or shape-relative cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shape is a binary matrix, Shape[row][col]. Values are 0 or 1.
// Operations return new matrices; a Shape is never modified in place.
type Shape [][]uint8

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]uint8(nil), row...)
	}
	return out
}

// Rotate returns the shape rotated 90 degrees clockwise.
// An h x w matrix becomes w x h with out[i][j] = s[h-1-j][i].
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range w {
		out[i] = make([]uint8, h)
		for j := range h {
			out[i][j] = s[h-1-j][i]
		}
	}
	return out
}

// Equal reports whether both shapes have the same dimensions and bits.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells returns the shape-relative coordinates of every set bit, row-major.
func (s Shape) Cells() []Point {
	pts := make([]Point, 0, 4)
	for y, row := range s {
		for x, v := range row {
			if v != 0 {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Piece is the active falling piece: a shape in its current rotation placed
// with its top-left corner at (X, Y).
type Piece struct {
	Type  PieceType
	Shape Shape
	X     int
	Y     int
}

// NewPiece returns a piece of type t at its spawn position on a board with
// the given number of columns.
func NewPiece(t PieceType, columns int) Piece {
	shape := ShapeOf(t)
	return Piece{
		Type:  t,
		Shape: shape,
		X:     columns/2 - shape.Width()/2,
		Y:     0,
	}
}

// Blocks returns the absolute grid coordinates covered by the piece.
func (p Piece) Blocks() []Point {
	cells := p.Shape.Cells()
	for i := range cells {
		cells[i].X += p.X
		cells[i].Y += p.Y
	}
	return cells
}

// Clone returns a copy that shares no memory with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}
