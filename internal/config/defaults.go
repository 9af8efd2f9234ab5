package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in configuration. It matches the
// embedded YAML and is used when that fails to parse.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Rows:    20,
			Columns: 10,
		},
		Timing: TimingConfig{
			FallIntervalMS:  500,
			BlinkCount:      6,
			BlinkIntervalMS: 100,
			SettleMS:        200,
		},
		Scoring: ScoringConfig{
			PointsPerLine: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 3.0,
				MinIntervalMS:   100,
			},
		},
	}
}
