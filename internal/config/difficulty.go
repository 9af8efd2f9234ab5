package config

import (
	"math"
	"time"
)

// DifficultyManager derives the fall interval from the score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled reports whether the level changes with the score.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level in [0, 1] for a score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from the initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallInterval returns the auto-descent period for a score. The base period
// is divided by 1 + level*speed_multiplier and floored at min_interval_ms.
// With progression disabled and a zero initial level the base is returned.
func (d *DifficultyManager) FallInterval(base time.Duration, score int) time.Duration {
	level := d.Level(score)
	if level == 0 {
		return base
	}
	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))
	floor := time.Duration(d.cfg.Scaling.MinIntervalMS) * time.Millisecond
	if interval < floor {
		interval = floor
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	// Round to whole milliseconds so equal levels compare equal.
	return interval.Round(time.Millisecond)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
