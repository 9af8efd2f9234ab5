// Package engine implements the falling-block game state: the grid, the active
// piece, collision and movement, line clearing and the session state machine.
// It performs no I/O; front-ends poll Snapshot() or subscribe to events.
package engine

import "fmt"

// PieceType identifies one of the seven tetrominoes.
type PieceType int

const (
	PieceI PieceType = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// PieceCount is the number of distinct piece types.
const PieceCount = 7

// AllPieces lists every piece type in table order.
var AllPieces = [PieceCount]PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

// String returns the single-letter name of the piece.
func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Valid reports whether t is one of the seven piece types.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceZ
}

// ParsePieceType converts a letter ("I", "O", ...) to a PieceType.
func ParsePieceType(s string) (PieceType, error) {
	for _, t := range AllPieces {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown piece type %q", s)
}

// Cell is a single grid cell: CellEmpty or the color identifier of the piece
// that was merged there.
type Cell uint8

// CellEmpty marks an unoccupied cell.
const CellEmpty Cell = 0

// Cell returns the color identifier written into the grid when a piece of
// this type locks.
func (t PieceType) Cell() Cell {
	return Cell(t) + 1
}

// Piece returns the type a non-empty cell came from.
func (c Cell) Piece() (PieceType, bool) {
	if c == CellEmpty || c > Cell(PieceCount) {
		return 0, false
	}
	return PieceType(c - 1), true
}

// Rune returns '.' for an empty cell and the piece letter otherwise.
func (c Cell) Rune() rune {
	t, ok := c.Piece()
	if !ok {
		if c == CellEmpty {
			return '.'
		}
		return '#'
	}
	return rune(t.String()[0])
}

// Hex returns the display color of the piece type.
func (t PieceType) Hex() string {
	return pieceHex[t]
}

var pieceHex = map[PieceType]string{
	PieceI: "#01EDFA",
	PieceJ: "#2E2E84",
	PieceL: "#FFC82E",
	PieceO: "#FEFB34",
	PieceS: "#53DA3F",
	PieceT: "#DD0AB2",
	PieceZ: "#FD3F59",
}

// shapeTable holds the spawn orientation of each piece. Never mutated.
var shapeTable = map[PieceType]Shape{
	PieceI: {{1, 1, 1, 1}},
	PieceJ: {{0, 0, 1}, {1, 1, 1}},
	PieceL: {{1, 0, 0}, {1, 1, 1}},
	PieceO: {{1, 1}, {1, 1}},
	PieceS: {{0, 1, 1}, {1, 1, 0}},
	PieceT: {{0, 1, 0}, {1, 1, 1}},
	PieceZ: {{1, 1, 0}, {0, 1, 1}},
}

// ShapeOf returns a copy of the spawn orientation for t.
// Panics on an unknown type.
func ShapeOf(t PieceType) Shape {
	s, ok := shapeTable[t]
	if !ok {
		panic(fmt.Sprintf("engine: no shape for piece type %d", t))
	}
	return s.Clone()
}
