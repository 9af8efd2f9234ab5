package engine

// Event is a notification emitted by a Session. Subscribers receive events
// synchronously, after the state change they describe has been committed.
type Event interface {
	sessionEvent()
}

// SpawnedEvent is emitted when a new active piece enters the board.
type SpawnedEvent struct {
	Piece Piece
	Next  PieceType
}

func (SpawnedEvent) sessionEvent() {}

// LockedEvent is emitted when the active piece is merged into the board.
type LockedEvent struct {
	Piece Piece
}

func (LockedEvent) sessionEvent() {}

// ClearPendingEvent is emitted when full rows wait for CommitClear.
type ClearPendingEvent struct {
	Rows []int
}

func (ClearPendingEvent) sessionEvent() {}

// LinesClearedEvent is emitted when full rows are removed from the board.
type LinesClearedEvent struct {
	Rows  []int
	Count int
}

func (LinesClearedEvent) sessionEvent() {}

// ScoreChangedEvent is emitted whenever the score changes, including the
// reset to zero on Start.
type ScoreChangedEvent struct {
	Score int
	Delta int
}

func (ScoreChangedEvent) sessionEvent() {}

// GameOverEvent is emitted once when a spawned piece does not fit.
type GameOverEvent struct {
	Score int
	Lines int
}

func (GameOverEvent) sessionEvent() {}

// Outcome describes what a single operation changed.
// The zero value means the operation was rejected or ignored.
type Outcome struct {
	Moved      bool  // piece translated
	Rotated    bool  // piece rotated
	Locked     bool  // piece merged into the board
	Pending    []int // full rows waiting for CommitClear
	Cleared    []int // rows removed from the board
	ScoreDelta int
	GameOver   bool
}

// Changed reports whether the operation altered any state.
func (o Outcome) Changed() bool {
	return o.Moved || o.Rotated || o.Locked || len(o.Cleared) > 0 || o.GameOver
}
