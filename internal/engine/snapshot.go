package engine

import (
	"fmt"
	"strings"
)

// Snapshot is a read-only copy of the observable session state.
type Snapshot struct {
	State    State      `json:"state"`
	Rows     int        `json:"rows"`
	Columns  int        `json:"columns"`
	Board    []string   `json:"board"` // one string per row, see Cell.Rune
	Piece    *PieceView `json:"piece,omitempty"`
	Next     string     `json:"next,omitempty"`
	Pending  []int      `json:"pending,omitempty"`
	Score    int        `json:"score"`
	Lines    int        `json:"lines"`
	Revision uint64     `json:"revision"`
}

// PieceView describes the active piece by its absolute blocks.
type PieceView struct {
	Type   string  `json:"type"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Blocks []Point `json:"blocks"`
}

// Snapshot copies the current state. The board is empty before the first
// Start.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:    s.state,
		Rows:     s.opts.Rows,
		Columns:  s.opts.Columns,
		Pending:  s.Pending(),
		Score:    s.score,
		Lines:    s.lines,
		Revision: s.revision,
	}
	if s.board != nil {
		snap.Board = FormatGrid(s.board)
	} else {
		snap.Board = FormatGrid(NewGrid(s.opts.Rows, s.opts.Columns))
	}
	if s.piece != nil {
		snap.Piece = &PieceView{
			Type:   s.piece.Type.String(),
			X:      s.piece.X,
			Y:      s.piece.Y,
			Blocks: s.piece.Blocks(),
		}
	}
	if s.hasNext && s.state != StateGameOver {
		snap.Next = s.next.String()
	}
	return snap
}

// FormatGrid renders each row as a string of Cell runes.
func FormatGrid(g *Grid) []string {
	out := make([]string, g.Rows())
	var b strings.Builder
	for y := range g.Rows() {
		b.Reset()
		for x := range g.Columns() {
			b.WriteRune(g.Get(x, y).Rune())
		}
		out[y] = b.String()
	}
	return out
}

// ParseGrid builds a grid from rows in the FormatGrid notation. '.' is empty,
// a piece letter is that piece's cell and '#' is an anonymous filled cell.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("engine: empty grid")
	}
	g := NewGrid(len(rows), len(rows[0]))
	for y, row := range rows {
		if len(row) != g.Columns() {
			return nil, fmt.Errorf("engine: row %d has %d columns, want %d", y, len(row), g.Columns())
		}
		for x, r := range row {
			switch r {
			case '.':
			case '#':
				g.Set(x, y, Cell(PieceCount)+1)
			default:
				t, err := ParsePieceType(string(r))
				if err != nil {
					return nil, fmt.Errorf("engine: row %d col %d: %w", y, x, err)
				}
				g.Set(x, y, t.Cell())
			}
		}
	}
	return g, nil
}
