package engine

import "math/rand"

// PieceSource supplies the sequence of pieces to spawn.
type PieceSource interface {
	Next() PieceType
}

// RandomSource picks each piece uniformly at random.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a source seeded with seed. Equal seeds produce
// equal sequences.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next random piece.
func (r *RandomSource) Next() PieceType {
	return AllPieces[r.rng.Intn(PieceCount)]
}

// SequenceSource repeats a fixed list of pieces.
type SequenceSource struct {
	pieces []PieceType
	pos    int
}

// NewSequenceSource returns a source cycling through pieces.
// Panics if pieces is empty.
func NewSequenceSource(pieces ...PieceType) *SequenceSource {
	if len(pieces) == 0 {
		panic("engine: empty piece sequence")
	}
	return &SequenceSource{pieces: append([]PieceType(nil), pieces...)}
}

// Next returns the next piece of the cycle.
func (s *SequenceSource) Next() PieceType {
	t := s.pieces[s.pos]
	s.pos = (s.pos + 1) % len(s.pieces)
	return t
}
