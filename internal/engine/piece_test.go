package engine

import "testing"

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, pt := range AllPieces {
		s := ShapeOf(pt)
		r := s
		for range 4 {
			r = r.Rotate()
		}
		if !r.Equal(s) {
			t.Errorf("%v: four rotations = %v, want %v", pt, r, s)
		}
	}
}

func TestRotateDimensions(t *testing.T) {
	for _, pt := range AllPieces {
		s := ShapeOf(pt)
		r := s.Rotate()
		if r.Height() != s.Width() || r.Width() != s.Height() {
			t.Errorf("%v: rotated %dx%d shape to %dx%d", pt, s.Height(), s.Width(), r.Height(), r.Width())
		}
		if len(r.Cells()) != 4 {
			t.Errorf("%v: rotated shape has %d cells", pt, len(r.Cells()))
		}
	}
}

func TestRotateClockwise(t *testing.T) {
	got := ShapeOf(PieceT).Rotate()
	want := Shape{{1, 0}, {1, 1}, {1, 0}}
	if !got.Equal(want) {
		t.Errorf("T rotated = %v, want %v", got, want)
	}

	got = ShapeOf(PieceI).Rotate()
	want = Shape{{1}, {1}, {1}, {1}}
	if !got.Equal(want) {
		t.Errorf("I rotated = %v, want %v", got, want)
	}
}

func TestShapeOfReturnsCopy(t *testing.T) {
	s := ShapeOf(PieceO)
	s[0][0] = 0
	if ShapeOf(PieceO)[0][0] != 1 {
		t.Errorf("Mutating a returned shape changed the table")
	}
}

func TestNewPieceSpawnPosition(t *testing.T) {
	cases := []struct {
		pt    PieceType
		wantX int
	}{
		{PieceI, 3},
		{PieceO, 4},
		{PieceT, 4},
		{PieceJ, 4},
	}
	for _, tc := range cases {
		p := NewPiece(tc.pt, DefaultColumns)
		if p.X != tc.wantX || p.Y != 0 {
			t.Errorf("%v spawned at (%d,%d), want (%d,0)", tc.pt, p.X, p.Y, tc.wantX)
		}
	}
}

func TestPieceBlocks(t *testing.T) {
	p := Piece{Type: PieceS, Shape: ShapeOf(PieceS), X: 2, Y: 5}
	want := []Point{{3, 5}, {4, 5}, {2, 6}, {3, 6}}
	got := p.Blocks()
	if len(got) != len(want) {
		t.Fatalf("Blocks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Blocks[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParsePieceType(t *testing.T) {
	for _, pt := range AllPieces {
		got, err := ParsePieceType(pt.String())
		if err != nil || got != pt {
			t.Errorf("ParsePieceType(%q) = %v, %v", pt.String(), got, err)
		}
	}
	if _, err := ParsePieceType("Q"); err == nil {
		t.Errorf("Expected error for unknown letter")
	}
}

func TestCellPieceRoundTrip(t *testing.T) {
	for _, pt := range AllPieces {
		got, ok := pt.Cell().Piece()
		if !ok || got != pt {
			t.Errorf("%v.Cell().Piece() = %v, %v", pt, got, ok)
		}
	}
	if _, ok := CellEmpty.Piece(); ok {
		t.Errorf("Empty cell reported a piece")
	}
}

func TestSequenceSourceCycles(t *testing.T) {
	src := NewSequenceSource(PieceI, PieceO)
	want := []PieceType{PieceI, PieceO, PieceI, PieceO}
	for i, w := range want {
		if got := src.Next(); got != w {
			t.Errorf("Next #%d = %v, want %v", i, got, w)
		}
	}
}

func TestRandomSourceDeterministic(t *testing.T) {
	a := NewRandomSource(99)
	b := NewRandomSource(99)
	for i := range 50 {
		pa, pb := a.Next(), b.Next()
		if pa != pb {
			t.Fatalf("Sequences diverged at %d: %v vs %v", i, pa, pb)
		}
		if !pa.Valid() {
			t.Fatalf("Invalid piece %v", pa)
		}
	}
}
