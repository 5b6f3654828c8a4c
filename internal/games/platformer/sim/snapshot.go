package sim

import (
	"slices"

	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick      int
	Level     int
	MaxLevels int
	State     State
	Paused    bool

	Width     float64
	Height    float64
	GroundY   float64
	TopBorder float64

	Player        Player
	Platforms     []core.Rect
	Obstacles     []core.Rect
	Coins         []core.Point
	HealthPickups []core.Point
	Enemies       []level.Enemy
	Guardian      level.Enemy
	Goal          core.Rect
	Background    core.RGB

	CoinRadius   float64
	PickupRadius float64
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	a := s.Arena
	return Snapshot{
		Tick:          s.tick,
		Level:         s.Level,
		MaxLevels:     s.MaxLevels,
		State:         s.state,
		Width:         a.Width,
		Height:        a.Height,
		GroundY:       a.GroundY,
		TopBorder:     a.TopBorder,
		Player:        s.Player,
		Platforms:     slices.Clone(a.Platforms),
		Obstacles:     slices.Clone(a.Obstacles),
		Coins:         slices.Clone(a.Coins),
		HealthPickups: slices.Clone(a.HealthPickups),
		Enemies:       slices.Clone(a.Enemies),
		Guardian:      a.Guardian,
		Goal:          a.GoalRect(),
		Background:    a.Background,
		CoinRadius:    s.cfg.Combat.CoinRadius,
		PickupRadius:  s.cfg.Combat.PickupRadius,
	}
}
