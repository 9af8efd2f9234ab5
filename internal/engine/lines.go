package engine

import "sort"

// DefaultPointsPerLine is the flat score awarded for each cleared row.
const DefaultPointsPerLine = 100

// DetectFullRows returns the indices of every full row, top to bottom.
func DetectFullRows(g *Grid) []int {
	var rows []int
	for y := range g.Rows() {
		if g.IsRowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ApplyClear removes the given rows and inserts the same number of empty rows
// at the top, preserving the grid height. Rows are removed highest index
// first, so the result does not depend on the order of the argument.
func ApplyClear(g *Grid, rows []int) {
	if len(rows) == 0 {
		return
	}
	sorted := append([]int(nil), rows...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	// Each removal shifts the remaining (smaller) indices down by one.
	removed := 0
	for i, y := range sorted {
		if i > 0 && sorted[i-1] == y {
			continue
		}
		g.ClearRow(y + removed)
		removed++
	}
}

// ScoreFor returns the score for clearing n rows at once. Not tiered.
func ScoreFor(n, pointsPerLine int) int {
	if n <= 0 {
		return 0
	}
	return n * pointsPerLine
}
