// Package config loads the game configuration from YAML and turns difficulty
// settings into fall intervals.
package config

import (
	"fmt"
	"time"
)

// BlockfallConfig is the complete game configuration.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the playfield size in cells.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// TimingConfig holds the durations of the game loop and the line clear
// animation, in milliseconds.
type TimingConfig struct {
	FallIntervalMS  int `yaml:"fall_interval_ms"`
	BlinkCount      int `yaml:"blink_count"`
	BlinkIntervalMS int `yaml:"blink_interval_ms"`
	SettleMS        int `yaml:"settle_ms"`
}

// FallInterval returns the base auto-descent period.
func (t TimingConfig) FallInterval() time.Duration {
	return time.Duration(t.FallIntervalMS) * time.Millisecond
}

// BlinkInterval returns the period of one line clear flash.
func (t TimingConfig) BlinkInterval() time.Duration {
	return time.Duration(t.BlinkIntervalMS) * time.Millisecond
}

// Settle returns the pause between the last flash and the row collapse.
func (t TimingConfig) Settle() time.Duration {
	return time.Duration(t.SettleMS) * time.Millisecond
}

// ScoringConfig sets the points awarded per cleared row.
type ScoringConfig struct {
	PointsPerLine int `yaml:"points_per_line"`
}

// DifficultyConfig defines how the fall interval shrinks as the score grows.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base speed, 1.0 = fastest
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how the level rises.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // score at which level 1.0 is reached
}

// ScalingConfig defines the speed-up at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // extra speed at max level
	MinIntervalMS   int     `yaml:"min_interval_ms"`  // floor for the fall interval
}

// DifficultyPreset is a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the starting level of a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.6
	default:
		return 0.0
	}
}

// IsFixedPreset reports whether the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset adjusts the difficulty section for a preset.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
		cfg.Difficulty.Progression.Type = "score"
	}
}

// Validate reports the first setting that cannot produce a playable game.
func (c BlockfallConfig) Validate() error {
	switch {
	case c.Board.Rows < 4 || c.Board.Columns < 4:
		return fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Rows, c.Board.Columns)
	case c.Timing.FallIntervalMS <= 0:
		return fmt.Errorf("fall_interval_ms must be positive, got %d", c.Timing.FallIntervalMS)
	case c.Timing.BlinkCount < 0 || c.Timing.BlinkIntervalMS < 0 || c.Timing.SettleMS < 0:
		return fmt.Errorf("line clear timings must not be negative")
	case c.Scoring.PointsPerLine <= 0:
		return fmt.Errorf("points_per_line must be positive, got %d", c.Scoring.PointsPerLine)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("initial_level must be within [0, 1], got %g", c.Difficulty.InitialLevel)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "none":
	default:
		return fmt.Errorf("unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return nil
}
