package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Level    int   // Level to start at (0 = first level)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Level:    1,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-indexed)
	GameOver bool // Whether the run has ended (death or victory)
	Paused   bool // Whether the game is paused or an outcome screen is shown
	Quit     bool // Whether the player asked to leave
	Menu     bool // Whether the player asked to return to level select
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
