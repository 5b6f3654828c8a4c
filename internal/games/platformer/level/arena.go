// Package level builds platformer arenas procedurally from a level number.
package level

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/pyjump/internal/core"
)

// ErrInvalidArena is returned when an arena cannot be simulated.
var ErrInvalidArena = errors.New("level: invalid arena")

// MotionKind selects the per-tick movement rule of an enemy.
type MotionKind int

const (
	MotionStatic        MotionKind = iota // Never moves
	MotionHorizontal                      // Bounces between the viewport edges
	MotionVertical                        // Bounces inside the playable band
	MotionDynamic                         // Horizontal stepping with a random vertical zigzag
	MotionPatrolBounded                   // Bounces between its platform's edges
)

// String returns a human-readable name for the motion kind.
func (k MotionKind) String() string {
	switch k {
	case MotionStatic:
		return "static"
	case MotionHorizontal:
		return "horizontal"
	case MotionVertical:
		return "vertical"
	case MotionDynamic:
		return "dynamic"
	case MotionPatrolBounded:
		return "patrol"
	default:
		return "unknown"
	}
}

// Enemy is a moving hazard. Direction is +1 or -1 and flips on hitting a bound.
type Enemy struct {
	core.Rect
	Speed      float64
	Direction  int // Horizontal direction (vertical for MotionVertical)
	VDirection int // Vertical direction of the last zigzag step
	Kind       MotionKind
	PatrolMin  float64 // Left bound when HasPatrol is set
	PatrolMax  float64 // Right bound when HasPatrol is set
	HasPatrol  bool
}

// Arena is the generated layout of one level.
// Coins and HealthPickups shrink as they are collected; everything else is fixed.
type Arena struct {
	Level         int
	Width         float64
	Height        float64
	GroundY       float64 // Top of the ground strip
	TopBorder     float64
	Platforms     []core.Rect
	Coins         []core.Point
	Obstacles     []core.Rect
	Enemies       []Enemy
	HealthPickups []core.Point
	Goal          core.Point // Top-left corner of the goal flag
	GoalW         float64
	GoalH         float64
	Guardian      Enemy
	Background    core.RGB
}

// GoalRect returns the collision rectangle of the goal.
func (a *Arena) GoalRect() core.Rect {
	return core.NewRect(a.Goal.X, a.Goal.Y, a.GoalW, a.GoalH)
}

// Clone returns a deep copy so a session can consume coins and pickups
// without touching the generated original.
func (a *Arena) Clone() *Arena {
	c := *a
	c.Platforms = slices.Clone(a.Platforms)
	c.Coins = slices.Clone(a.Coins)
	c.Obstacles = slices.Clone(a.Obstacles)
	c.Enemies = slices.Clone(a.Enemies)
	c.HealthPickups = slices.Clone(a.HealthPickups)
	return &c
}

// Validate checks the preconditions of simulation.
// All failures wrap ErrInvalidArena.
func (a *Arena) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil arena", ErrInvalidArena)
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidArena, a.Width, a.Height)
	}
	if a.GroundY <= a.TopBorder || a.GroundY > a.Height {
		return fmt.Errorf("%w: ground %v outside (%v, %v]", ErrInvalidArena, a.GroundY, a.TopBorder, a.Height)
	}
	if a.GoalW <= 0 || a.GoalH <= 0 {
		return fmt.Errorf("%w: empty goal", ErrInvalidArena)
	}
	if !a.GoalRect().Within(a.Width, a.Height) {
		return fmt.Errorf("%w: goal %+v outside viewport", ErrInvalidArena, a.GoalRect())
	}
	for i, p := range a.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("%w: platform %d has size %vx%v", ErrInvalidArena, i, p.W, p.H)
		}
	}
	for i, e := range a.Enemies {
		if err := validateEnemy(e); err != nil {
			return fmt.Errorf("%w: enemy %d: %v", ErrInvalidArena, i, err)
		}
	}
	if err := validateEnemy(a.Guardian); err != nil {
		return fmt.Errorf("%w: guardian: %v", ErrInvalidArena, err)
	}
	return nil
}

func validateEnemy(e Enemy) error {
	if e.W <= 0 || e.H <= 0 {
		return fmt.Errorf("size %vx%v", e.W, e.H)
	}
	if e.Direction != 1 && e.Direction != -1 {
		return fmt.Errorf("direction %d", e.Direction)
	}
	if e.Kind < MotionStatic || e.Kind > MotionPatrolBounded {
		return fmt.Errorf("motion kind %d", e.Kind)
	}
	if e.Kind == MotionPatrolBounded && !e.HasPatrol {
		return errors.New("patrol enemy without bounds")
	}
	if e.HasPatrol && e.PatrolMax < e.PatrolMin {
		return fmt.Errorf("patrol [%v, %v]", e.PatrolMin, e.PatrolMax)
	}
	return nil
}
