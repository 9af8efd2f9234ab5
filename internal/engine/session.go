package engine

import (
	"fmt"
	"time"
)

// DefaultFallInterval is the auto-descent period.
const DefaultFallInterval = 500 * time.Millisecond

// State is the session lifecycle state.
type State int

const (
	StateIdle     State = iota // no board, no piece
	StateRunning               // piece falling, ticks and input accepted
	StateClearing              // full rows waiting for CommitClear, no piece
	StateGameOver              // board frozen, only Start accepted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateClearing:
		return "clearing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{StateIdle, StateRunning, StateClearing, StateGameOver} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("engine: unknown state %q", b)
}

// Action is a discrete player input.
type Action int

const (
	ActionStart Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionRotateClockwise
)

// Clock schedules a repeating callback. The returned function cancels it.
type Clock interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// Options configures a Session. Zero fields take the defaults.
type Options struct {
	Rows          int
	Columns       int
	FallInterval  time.Duration
	PointsPerLine int

	// DeferClear makes a lock that fills rows stop in StateClearing until
	// CommitClear is called, so a front-end can animate the rows first.
	DeferClear bool

	// Source supplies pieces. Defaults to a RandomSource seeded with 1.
	Source PieceSource

	// Clock drives auto-descent. With a nil clock the caller calls Tick.
	Clock Clock

	// Interval, when set, overrides FallInterval as a function of score.
	Interval func(score int) time.Duration
}

func (o Options) withDefaults() Options {
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.FallInterval <= 0 {
		o.FallInterval = DefaultFallInterval
	}
	if o.PointsPerLine <= 0 {
		o.PointsPerLine = DefaultPointsPerLine
	}
	if o.Source == nil {
		o.Source = NewRandomSource(1)
	}
	return o
}

// Session owns one game: board, active piece, score and lifecycle.
// It is not safe for concurrent use; a single goroutine drives it.
type Session struct {
	opts Options

	state   State
	board   *Grid
	piece   *Piece
	next    PieceType
	hasNext bool
	pending []int
	score   int
	lines   int

	interval time.Duration
	cancel   func()

	listeners map[int]func(Event)
	listenID  int
	revision  uint64
}

// NewSession returns an idle session.
func NewSession(opts Options) *Session {
	return &Session{
		opts:      opts.withDefaults(),
		state:     StateIdle,
		listeners: make(map[int]func(Event)),
	}
}

// Subscribe registers fn for every future event and returns a function that
// removes it.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := s.listenID
	s.listenID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Session) emit(e Event) {
	for i := 0; i < s.listenID; i++ {
		if fn, ok := s.listeners[i]; ok {
			fn(e)
		}
	}
}

// Start resets the board to empty, zeroes the score, spawns the first piece
// and begins auto-descent. Ignored while a game is in progress.
func (s *Session) Start() Outcome {
	if s.state == StateRunning || s.state == StateClearing {
		return Outcome{}
	}
	out, _ := s.StartFrom(nil)
	return out
}

// StartFrom starts a session on a copy of board, or an empty board when
// board is nil. It restarts unconditionally.
func (s *Session) StartFrom(board *Grid) (Outcome, error) {
	if board != nil && (board.Rows() != s.opts.Rows || board.Columns() != s.opts.Columns) {
		return Outcome{}, fmt.Errorf("engine: board is %dx%d, session expects %dx%d",
			board.Rows(), board.Columns(), s.opts.Rows, s.opts.Columns)
	}

	s.halt()
	switch {
	case board != nil:
		s.board = board.Clone()
	case s.board == nil:
		s.board = NewGrid(s.opts.Rows, s.opts.Columns)
	default:
		s.board.Reset()
	}

	prev := s.score
	s.score = 0
	s.lines = 0
	s.piece = nil
	s.pending = nil
	s.hasNext = false
	s.state = StateRunning
	s.revision++
	s.emit(ScoreChangedEvent{Score: 0, Delta: -prev})

	var out Outcome
	if !s.spawn() {
		out.GameOver = true
		return out, nil
	}
	s.schedule()
	return out, nil
}

// Stop cancels auto-descent. A game in progress ends as if it were lost;
// the board and the falling piece stay readable where they stopped.
func (s *Session) Stop() {
	s.halt()
	if s.state == StateRunning || s.state == StateClearing {
		s.gameOver()
	}
}

func (s *Session) halt() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) schedule() {
	s.halt()
	s.interval = s.currentInterval()
	if s.opts.Clock == nil {
		return
	}
	s.cancel = s.opts.Clock.Every(s.interval, func() { s.Tick() })
}

func (s *Session) currentInterval() time.Duration {
	if s.opts.Interval != nil {
		if d := s.opts.Interval(s.score); d > 0 {
			return d
		}
	}
	return s.opts.FallInterval
}

// Tick performs one auto-descent step. Ignored unless running.
func (s *Session) Tick() Outcome {
	if s.state != StateRunning {
		return Outcome{}
	}
	return s.MoveDown()
}

// Apply dispatches a player action. Actions other than ActionStart are
// ignored unless running; ActionStart is ignored while running.
func (s *Session) Apply(a Action) Outcome {
	switch a {
	case ActionStart:
		return s.Start()
	case ActionMoveLeft:
		return s.MoveLeft()
	case ActionMoveRight:
		return s.MoveRight()
	case ActionMoveDown:
		return s.MoveDown()
	case ActionRotateClockwise:
		return s.Rotate()
	}
	return Outcome{}
}

// IsLegal reports whether shape placed at (x, y) lies inside the board and
// covers no occupied cell. It has no side effects.
func (s *Session) IsLegal(shape Shape, x, y int) bool {
	if s.board == nil {
		return false
	}
	return Fits(s.board, shape, x, y)
}

// Fits reports whether shape placed at (x, y) lies inside g and covers no
// occupied cell.
func Fits(g *Grid, shape Shape, x, y int) bool {
	for _, c := range shape.Cells() {
		bx, by := x+c.X, y+c.Y
		if !g.InBounds(bx, by) {
			return false
		}
		if g.Get(bx, by) != CellEmpty {
			return false
		}
	}
	return true
}

// MoveLeft shifts the piece one column left if legal.
func (s *Session) MoveLeft() Outcome {
	return s.shift(-1)
}

// MoveRight shifts the piece one column right if legal.
func (s *Session) MoveRight() Outcome {
	return s.shift(1)
}

func (s *Session) shift(dx int) Outcome {
	if s.state != StateRunning || s.piece == nil {
		return Outcome{}
	}
	if !s.IsLegal(s.piece.Shape, s.piece.X+dx, s.piece.Y) {
		return Outcome{}
	}
	s.piece.X += dx
	s.revision++
	return Outcome{Moved: true}
}

// Rotate turns the piece clockwise in place. Rejected without adjustment
// when the rotated shape does not fit.
func (s *Session) Rotate() Outcome {
	if s.state != StateRunning || s.piece == nil {
		return Outcome{}
	}
	rotated := s.piece.Shape.Rotate()
	if !s.IsLegal(rotated, s.piece.X, s.piece.Y) {
		return Outcome{}
	}
	s.piece.Shape = rotated
	s.revision++
	return Outcome{Rotated: true}
}

// MoveDown drops the piece one row. When it cannot descend it locks: the
// piece is merged, full rows are cleared and the next piece spawns.
func (s *Session) MoveDown() Outcome {
	if s.state != StateRunning || s.piece == nil {
		return Outcome{}
	}
	if s.IsLegal(s.piece.Shape, s.piece.X, s.piece.Y+1) {
		s.piece.Y++
		s.revision++
		return Outcome{Moved: true}
	}
	return s.lock()
}

// HardDrop moves the piece down until it locks.
func (s *Session) HardDrop() Outcome {
	var out Outcome
	for s.state == StateRunning && s.piece != nil {
		step := s.MoveDown()
		if !step.Moved {
			step.Moved = out.Moved
			return step
		}
		out.Moved = true
	}
	return out
}

func (s *Session) lock() Outcome {
	p := *s.piece
	s.merge(p)
	s.piece = nil
	s.revision++
	s.emit(LockedEvent{Piece: p.Clone()})

	out := Outcome{Locked: true}
	rows := DetectFullRows(s.board)
	if len(rows) > 0 && s.opts.DeferClear {
		s.state = StateClearing
		s.pending = rows
		out.Pending = append([]int(nil), rows...)
		s.emit(ClearPendingEvent{Rows: append([]int(nil), rows...)})
		return out
	}
	s.commit(rows, &out)
	return out
}

// merge writes the piece's color into every cell it covers.
func (s *Session) merge(p Piece) {
	c := p.Type.Cell()
	for _, b := range p.Blocks() {
		s.board.Set(b.X, b.Y, c)
	}
}

// CommitClear removes the rows held by StateClearing, updates the score and
// spawns the next piece. Ignored in any other state.
func (s *Session) CommitClear() Outcome {
	if s.state != StateClearing {
		return Outcome{}
	}
	rows := s.pending
	s.pending = nil
	s.state = StateRunning
	var out Outcome
	s.commit(rows, &out)
	return out
}

func (s *Session) commit(rows []int, out *Outcome) {
	if len(rows) > 0 {
		ApplyClear(s.board, rows)
		delta := ScoreFor(len(rows), s.opts.PointsPerLine)
		s.score += delta
		s.lines += len(rows)
		s.revision++

		out.Cleared = append([]int(nil), rows...)
		out.ScoreDelta = delta
		s.emit(LinesClearedEvent{Rows: append([]int(nil), rows...), Count: len(rows)})
		s.emit(ScoreChangedEvent{Score: s.score, Delta: delta})
	}

	if !s.spawn() {
		out.GameOver = true
		return
	}
	if s.opts.Clock != nil && s.currentInterval() != s.interval {
		s.schedule()
	}
}

// spawn places the next piece at its spawn position. It ends the game and
// returns false when the piece does not fit.
func (s *Session) spawn() bool {
	if !s.hasNext {
		s.next = s.opts.Source.Next()
		s.hasNext = true
	}
	t := s.next
	s.next = s.opts.Source.Next()

	p := NewPiece(t, s.board.Columns())
	if !s.IsLegal(p.Shape, p.X, p.Y) {
		s.piece = nil
		s.gameOver()
		return false
	}
	s.piece = &p
	s.revision++
	s.emit(SpawnedEvent{Piece: p.Clone(), Next: s.next})
	return true
}

func (s *Session) gameOver() {
	s.halt()
	s.state = StateGameOver
	s.pending = nil
	s.revision++
	s.emit(GameOverEvent{Score: s.score, Lines: s.lines})
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Running reports whether a piece is falling.
func (s *Session) Running() bool {
	return s.state == StateRunning
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Lines returns the number of rows cleared this session.
func (s *Session) Lines() int {
	return s.lines
}

// Board returns a copy of the board, or nil before the first Start.
func (s *Session) Board() *Grid {
	if s.board == nil {
		return nil
	}
	return s.board.Clone()
}

// Piece returns a copy of the active piece.
func (s *Session) Piece() (Piece, bool) {
	if s.piece == nil {
		return Piece{}, false
	}
	return s.piece.Clone(), true
}

// Next returns the piece that will spawn after the active one.
func (s *Session) Next() (PieceType, bool) {
	return s.next, s.hasNext
}

// Pending returns the rows waiting for CommitClear.
func (s *Session) Pending() []int {
	return append([]int(nil), s.pending...)
}

// Interval returns the current auto-descent period.
func (s *Session) Interval() time.Duration {
	if s.interval == 0 {
		return s.currentInterval()
	}
	return s.interval
}

// Options returns the effective options.
func (s *Session) Options() Options {
	return s.opts
}

// Revision increases on every state change. Observers compare revisions
// to skip redundant redraws.
func (s *Session) Revision() uint64 {
	return s.revision
}
