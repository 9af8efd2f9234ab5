package engine

import (
	"slices"
	"testing"
)

func mustParse(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := ParseGrid(rows)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return g
}

// emptyRows returns n rows of '.' of the given width.
func emptyRows(n, width int) []string {
	row := ""
	for range width {
		row += "."
	}
	out := make([]string, n)
	for i := range out {
		out[i] = row
	}
	return out
}

func TestNewGridEmpty(t *testing.T) {
	g := NewGrid(DefaultRows, DefaultColumns)
	if g.Rows() != 20 || g.Columns() != 10 {
		t.Fatalf("Expected 20x10 grid, got %dx%d", g.Rows(), g.Columns())
	}
	if g.Occupied() != 0 {
		t.Errorf("Expected empty grid, got %d occupied cells", g.Occupied())
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(4, 4)
	cases := []struct {
		name string
		fn   func()
	}{
		{"get negative x", func() { g.Get(-1, 0) }},
		{"get y past bottom", func() { g.Get(0, 4) }},
		{"set x past right", func() { g.Set(4, 0, PieceI.Cell()) }},
		{"clear row -1", func() { g.ClearRow(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestClearRowShiftsDown(t *testing.T) {
	g := mustParse(t,
		"....",
		"I...",
		"####",
		".O..",
	)
	g.ClearRow(2)

	want := []string{
		"....",
		"....",
		"I...",
		".O..",
	}
	if got := FormatGrid(g); !slices.Equal(got, want) {
		t.Errorf("ClearRow(2) = %v, want %v", got, want)
	}
}

func TestDetectFullRows(t *testing.T) {
	g := mustParse(t,
		"....",
		"####",
		"#.##",
		"TTTT",
	)
	got := DetectFullRows(g)
	if !slices.Equal(got, []int{1, 3}) {
		t.Errorf("DetectFullRows = %v, want [1 3]", got)
	}
}

func TestApplyClearSingleRow(t *testing.T) {
	rows := emptyRows(10, 10)
	rows[4] = "..Z......."
	rows[5] = "##########"
	g := mustParse(t, rows...)

	ApplyClear(g, []int{5})

	if g.Get(2, 5) != PieceZ.Cell() {
		t.Errorf("Expected row 4 content to move to row 5")
	}
	for x := range g.Columns() {
		if g.Get(x, 0) != CellEmpty {
			t.Errorf("Expected new top row to be empty, got %v at x=%d", g.Get(x, 0), x)
		}
	}
	if g.Occupied() != 1 {
		t.Errorf("Expected 1 occupied cell, got %d", g.Occupied())
	}
}

func TestApplyClearOrderIndependent(t *testing.T) {
	base := []string{
		"J...",
		"####",
		".L..",
		"####",
		"S...",
		"####",
	}
	want := []string{
		"....",
		"....",
		"....",
		"J...",
		".L..",
		"S...",
	}
	for _, rows := range [][]int{{1, 3, 5}, {5, 3, 1}, {3, 1, 5}, {1, 1, 3, 5}} {
		g := mustParse(t, base...)
		ApplyClear(g, rows)
		if got := FormatGrid(g); !slices.Equal(got, want) {
			t.Errorf("ApplyClear(%v) = %v, want %v", rows, got, want)
		}
	}
}

func TestScoreFor(t *testing.T) {
	cases := map[int]int{0: 0, 1: 100, 2: 200, 3: 300, 4: 400}
	for n, want := range cases {
		if got := ScoreFor(n, DefaultPointsPerLine); got != want {
			t.Errorf("ScoreFor(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	rows := []string{
		"I.JL",
		"OSTZ",
		"#...",
	}
	g := mustParse(t, rows...)
	if got := FormatGrid(g); !slices.Equal(got, rows) {
		t.Errorf("FormatGrid(ParseGrid) = %v, want %v", got, rows)
	}
	if _, err := ParseGrid([]string{"..", "..."}); err == nil {
		t.Errorf("Expected error for ragged rows")
	}
	if _, err := ParseGrid([]string{".X"}); err == nil {
		t.Errorf("Expected error for unknown piece letter")
	}
}
