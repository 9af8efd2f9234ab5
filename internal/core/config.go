package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second
	Seed     int64 // Piece sequence seed; 0 means pick one from the clock
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary a game reports to the platform after each step.
type GameState struct {
	Score    int
	Lines    int
	Started  bool // a session has been started at least once
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Changed is false when the step left the display untouched.
	Changed bool
}
