package sim

import (
	"math/rand"

	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
)

// Bounds is the box an enemy bounces inside.
type Bounds struct {
	MinX, MaxX float64 // Left and right walls
	MinY, MaxY float64 // Ceiling and floor
}

// ArenaBounds returns the full-viewport bounds of an arena's playable band.
func ArenaBounds(a *level.Arena) Bounds {
	return Bounds{MinX: 0, MaxX: a.Width, MinY: a.TopBorder, MaxY: a.GroundY}
}

// Advance moves an enemy one tick according to its motion kind.
// Patrolled enemies use their patrol range instead of the horizontal bounds.
// rng is only used by dynamic enemies.
func Advance(e *level.Enemy, b Bounds, rng *rand.Rand) {
	if e.HasPatrol {
		b.MinX, b.MaxX = e.PatrolMin, e.PatrolMax
	}

	switch e.Kind {
	case level.MotionStatic:
	case level.MotionHorizontal, level.MotionPatrolBounded:
		stepX(e, b)
	case level.MotionVertical:
		e.Y += e.Speed * float64(e.Direction)
		e.Direction = bounce(&e.Y, e.H, b.MinY, b.MaxY, e.Direction)
	case level.MotionDynamic:
		stepX(e, b)
		if rng.Intn(2) == 0 {
			e.VDirection = -1
		} else {
			e.VDirection = 1
		}
		e.Y += e.Speed * float64(e.VDirection)
		e.VDirection = bounce(&e.Y, e.H, b.MinY, b.MaxY, e.VDirection)
	}
}

func stepX(e *level.Enemy, b Bounds) {
	e.X += e.Speed * float64(e.Direction)
	e.Direction = bounce(&e.X, e.W, b.MinX, b.MaxX, e.Direction)
}

// bounce clamps pos so [pos, pos+size] stays inside [lo, hi] and returns the
// direction to travel next.
func bounce(pos *float64, size, lo, hi float64, dir int) int {
	switch {
	case *pos <= lo:
		*pos = lo
		return 1
	case *pos+size >= hi:
		*pos = max(hi-size, lo)
		return -1
	}
	return dir
}
