package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	var cfg BlockfallConfig
	require.NoError(t, yaml.Unmarshal(defaultBlockfallYAML, &cfg))
	assert.Equal(t, DefaultBlockfallConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "board:\n  rows: 24\ntiming:\n  fall_interval_ms: 300\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Board.Rows)
	assert.Equal(t, 10, cfg.Board.Columns)
	assert.Equal(t, 300*time.Millisecond, cfg.Timing.FallInterval())
	assert.Equal(t, 6, cfg.Timing.BlinkCount)
	assert.Equal(t, 100, cfg.Scoring.PointsPerLine)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "board: [not, a, map]\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "board:\n  rows: 2\n"))
	assert.ErrorContains(t, err, "at least 4x4")
}

func TestLoadWithoutPathIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockfallConfig)
		ok     bool
	}{
		{"defaults", func(*BlockfallConfig) {}, true},
		{"narrow board", func(c *BlockfallConfig) { c.Board.Columns = 3 }, false},
		{"zero interval", func(c *BlockfallConfig) { c.Timing.FallIntervalMS = 0 }, false},
		{"negative settle", func(c *BlockfallConfig) { c.Timing.SettleMS = -1 }, false},
		{"no blink", func(c *BlockfallConfig) { c.Timing.BlinkCount = 0 }, true},
		{"zero points", func(c *BlockfallConfig) { c.Scoring.PointsPerLine = 0 }, false},
		{"level above one", func(c *BlockfallConfig) { c.Difficulty.InitialLevel = 1.5 }, false},
		{"time progression", func(c *BlockfallConfig) { c.Difficulty.Progression.Type = "time" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyFixed, p)

	p, err = ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("insane")
	assert.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyNormal)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.InDelta(t, 0.3, cfg.Difficulty.InitialLevel, 1e-9)

	ApplyPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Zero(t, cfg.Difficulty.InitialLevel)
}

func TestFallIntervalFixed(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	dm := NewDifficultyManager(cfg.Difficulty)

	for _, score := range []int{0, 100, 5000, 100000} {
		assert.Equal(t, 500*time.Millisecond, dm.FallInterval(cfg.Timing.FallInterval(), score))
	}
}

func TestFallIntervalProgression(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	dm := NewDifficultyManager(cfg.Difficulty)
	base := cfg.Timing.FallInterval()

	assert.Equal(t, base, dm.FallInterval(base, 0))
	assert.Equal(t, 125*time.Millisecond, dm.FallInterval(base, 5000))
	assert.Equal(t, 125*time.Millisecond, dm.FallInterval(base, 50000))

	prev := base
	for score := 0; score <= 5000; score += 100 {
		got := dm.FallInterval(base, score)
		assert.LessOrEqual(t, got, prev, "interval grew at score %d", score)
		prev = got
	}
}

func TestFallIntervalFloor(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 100, MinIntervalMS: 80},
	})
	assert.Equal(t, 80*time.Millisecond, dm.FallInterval(500*time.Millisecond, 0))
}
