package blockfall

import "github.com/vovakirdan/blockfall/internal/engine"

// Snapshot is the engine snapshot plus the front-end state around it.
type Snapshot struct {
	engine.Snapshot
	Tick   uint64 `json:"tick"`
	Mode   string `json:"mode"`
	Paused bool   `json:"paused"`
	// Flashing holds the rows being animated before a clear.
	Flashing []int `json:"flashing,omitempty"`
}

// Snapshot returns the current state for determinism checks and spectators.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Snapshot: g.session.Snapshot(),
		Tick:     g.tick,
		Mode:     g.Mode(),
		Paused:   g.paused,
		Flashing: append([]int(nil), g.blinkRows...),
	}
}
