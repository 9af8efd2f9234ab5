// Package blockfall adapts the engine session to the platform game contract:
// it turns input frames into engine actions, drives the session clock one
// frame per step, and animates line clears before committing them.
package blockfall

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// ID is the game identifier used for score storage.
const ID = "blockfall"

// Game is one player's blockfall game.
type Game struct {
	cfg        config.BlockfallConfig
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager
	newSource  func(seed int64) engine.PieceSource

	clock   *core.StepClock
	session *engine.Session
	unsub   func()

	tick    uint64
	frame   time.Duration
	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	highScore int
	localRev  uint64 // bumps on pause and blink changes the session does not see

	// Line clear animation
	blinkRows   []int
	blinkShown  bool
	blinkCount  int
	cancelBlink func()
}

// New creates a game from a validated configuration.
func New(cfg config.BlockfallConfig, preset config.DifficultyPreset) *Game {
	if preset == "" {
		preset = config.DifficultyFixed
	}
	config.ApplyPreset(&cfg, preset)
	return &Game{
		cfg:        cfg,
		preset:     preset,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		newSource: func(seed int64) engine.PieceSource {
			return engine.NewRandomSource(seed)
		},
	}
}

// NewDefault creates a game with the built-in configuration.
func NewDefault() *Game {
	return New(config.DefaultBlockfallConfig(), config.DifficultyFixed)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Mode returns the difficulty preset, used to group scores.
func (g *Game) Mode() string {
	return string(g.preset)
}

// Reset discards any game in progress and returns to the start screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.unsub != nil {
		g.unsub()
	}
	g.stopBlink()

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.frame = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.paused = false
	g.localRev = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()

	base := g.cfg.Timing.FallInterval()
	g.clock = core.NewStepClock()
	g.session = engine.NewSession(engine.Options{
		Rows:          g.cfg.Board.Rows,
		Columns:       g.cfg.Board.Columns,
		FallInterval:  base,
		PointsPerLine: g.cfg.Scoring.PointsPerLine,
		DeferClear:    true,
		Source:        g.newSource(rc.Seed),
		Clock:         g.clock,
		Interval: func(score int) time.Duration {
			return g.difficulty.FallInterval(base, score)
		},
	})
	g.unsub = g.session.Subscribe(g.onEvent)
}

// SetHighScore sets the best previous score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
	g.localRev++
}

// Resize re-lays out the game without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
	g.localRev++
}

func (g *Game) checkScreenSize() {
	minW, minH := layoutSize(g.cfg.Board.Rows, g.cfg.Board.Columns)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

func (g *Game) onEvent(e engine.Event) {
	if ev, ok := e.(engine.ClearPendingEvent); ok {
		g.startBlink(ev.Rows)
	}
}

// Step applies the frame's input in order, then advances the clock by one
// frame. A paused or undersized game only reacts to pause.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	before := g.Revision()

	for _, a := range in.Actions() {
		g.apply(a)
	}
	if !g.paused && !g.tooSmall {
		g.clock.Advance(g.frame)
	}

	return core.StepResult{State: g.State(), Changed: g.Revision() != before}
}

func (g *Game) apply(a core.Action) {
	if a == core.ActionPause {
		if g.session.State() == engine.StateRunning || g.session.State() == engine.StateClearing {
			g.paused = !g.paused
			g.localRev++
		}
		return
	}
	if g.paused || g.tooSmall {
		return
	}

	switch a {
	case core.ActionStart:
		g.session.Apply(engine.ActionStart)
	case core.ActionLeft:
		g.session.Apply(engine.ActionMoveLeft)
	case core.ActionRight:
		g.session.Apply(engine.ActionMoveRight)
	case core.ActionDown:
		g.session.Apply(engine.ActionMoveDown)
	case core.ActionRotate:
		g.session.Apply(engine.ActionRotateClockwise)
	case core.ActionDrop:
		g.session.HardDrop()
	}
}

// startBlink flashes the full rows blink_count times, waits settle_ms and
// then commits the clear.
func (g *Game) startBlink(rows []int) {
	g.stopBlink()
	g.blinkRows = rows
	g.blinkShown = true
	g.blinkCount = 0
	g.localRev++

	if g.cfg.Timing.BlinkCount <= 0 || g.cfg.Timing.BlinkIntervalMS <= 0 {
		g.settle()
		return
	}
	g.cancelBlink = g.clock.Every(g.cfg.Timing.BlinkInterval(), func() {
		g.blinkShown = !g.blinkShown
		g.blinkCount++
		g.localRev++
		if g.blinkCount >= g.cfg.Timing.BlinkCount {
			g.settle()
		}
	})
}

func (g *Game) settle() {
	if g.cancelBlink != nil {
		g.cancelBlink()
		g.cancelBlink = nil
	}
	if g.cfg.Timing.SettleMS <= 0 {
		g.commitClear()
		return
	}
	g.cancelBlink = g.clock.Every(g.cfg.Timing.Settle(), g.commitClear)
}

func (g *Game) commitClear() {
	g.stopBlink()
	g.session.CommitClear()
}

func (g *Game) stopBlink() {
	if g.cancelBlink != nil {
		g.cancelBlink()
		g.cancelBlink = nil
	}
	if g.blinkRows != nil {
		g.blinkRows = nil
		g.localRev++
	}
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		Started:  st != engine.StateIdle,
		GameOver: st == engine.StateGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Revision changes whenever the rendered output may have changed.
func (g *Game) Revision() uint64 {
	return g.session.Revision() + g.localRev
}

// Session exposes the engine session for observers.
func (g *Game) Session() *engine.Session {
	return g.session
}
