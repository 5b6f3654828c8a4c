package sim

import (
	"testing"

	"github.com/vovakirdan/pyjump/internal/core"
)

func TestLandOnPlatform(t *testing.T) {
	a := emptyArena()
	a.Platforms = []core.Rect{{X: 0, Y: 300, W: 200, H: 15}}
	s := newSession(t, a, 50)
	s.Player.Y = 245
	s.Player.OnGround = false

	s.Step(idle()) // Bottom reaches 300 exactly, touching is not overlapping
	if s.Player.OnGround {
		t.Fatal("touching the platform top should not count as landing")
	}
	s.Step(idle())
	if s.Player.Y != 250 || !s.Player.OnGround {
		t.Errorf("y=%v onGround=%v, expected standing on the platform at 250", s.Player.Y, s.Player.OnGround)
	}

	// Standing still keeps the player on the platform
	for range 10 {
		s.Step(idle())
	}
	if s.Player.Y != 250 || !s.Player.OnGround {
		t.Errorf("y=%v onGround=%v, expected to stay on the platform", s.Player.Y, s.Player.OnGround)
	}
}

func TestLandingBeatsEdgePush(t *testing.T) {
	a := emptyArena()
	a.Platforms = []core.Rect{{X: 142, Y: 152, W: 100, H: 15}}
	s := newSession(t, a, 50)
	s.Player.Rect = core.NewRect(100, 100, 40, 50)

	// Diagonal approach: the previous rect is both above and left of the platform
	s.Step(core.FrameOf(core.ActionRight))
	if s.Player.X != 105 || s.Player.Y != 102 || !s.Player.OnGround {
		t.Errorf("player at (%v, %v) onGround=%v, expected landed at (105, 102)", s.Player.X, s.Player.Y, s.Player.OnGround)
	}
}

func TestBonkFromBelow(t *testing.T) {
	a := emptyArena()
	a.Platforms = []core.Rect{{X: 0, Y: 250, W: 200, H: 15}}
	s := newSession(t, a, 50)

	s.Step(core.FrameOf(core.ActionJump))
	if s.Player.Y != 265 {
		t.Errorf("y = %v, expected snapped under the platform at 265", s.Player.Y)
	}
	if !s.Player.Jumping || s.Player.JumpPhase >= 0 {
		t.Errorf("jump phase = %d, expected the descending half", s.Player.JumpPhase)
	}

	for range 5 {
		s.Step(idle())
	}
	if s.Player.Y != 330 || !s.Player.OnGround || s.Player.Jumping {
		t.Errorf("y=%v onGround=%v jumping=%v, expected back on the ground", s.Player.Y, s.Player.OnGround, s.Player.Jumping)
	}
}

func TestJumpLandsOnLowPlatform(t *testing.T) {
	// The first and last ticks of a jump move 72px, more than the player and
	// the platform are tall together.
	a := emptyArena()
	plat := core.Rect{X: 100, Y: a.GroundY - 70, W: 140, H: 15}
	a.Platforms = []core.Rect{plat}
	s := newSession(t, a, 50)

	s.Step(core.FrameOf(core.ActionJump, core.ActionRight))
	landed := false
	for range 60 {
		s.Step(core.FrameOf(core.ActionRight))
		if s.Player.OnGround {
			landed = s.Player.Bottom() == plat.Y
			break
		}
		if s.Player.X > plat.Right() {
			break
		}
	}
	if !landed {
		t.Errorf("player at (%v, %v) onGround=%v, expected standing on the platform top %v",
			s.Player.X, s.Player.Y, s.Player.OnGround, plat.Y)
	}
}

func TestFallAcrossPlatformTopLands(t *testing.T) {
	a := emptyArena()
	plat := core.Rect{X: 0, Y: 300, W: 200, H: 15}
	a.Platforms = []core.Rect{plat}
	s := newSession(t, a, 50)

	// Descending half of the arc: the player starts above the platform and
	// ends the tick entirely below it.
	s.Player.Rect = core.NewRect(50, 240, 40, 50)
	s.Player.Jumping = true
	s.Player.OnGround = false
	s.Player.JumpPhase = -12

	s.Step(idle())
	if s.Player.Y != 250 || !s.Player.OnGround || s.Player.Jumping {
		t.Errorf("y=%v onGround=%v jumping=%v, expected landed at 250", s.Player.Y, s.Player.OnGround, s.Player.Jumping)
	}
}

func TestJumpUnderLowPlatformBonks(t *testing.T) {
	a := emptyArena()
	plat := core.Rect{X: 0, Y: a.GroundY - 70, W: 200, H: 15}
	a.Platforms = []core.Rect{plat}
	s := newSession(t, a, 50)

	// The first tick rises past the whole platform
	s.Step(core.FrameOf(core.ActionJump))
	if s.Player.Y != plat.Bottom() {
		t.Errorf("y = %v, expected stopped under the platform at %v", s.Player.Y, plat.Bottom())
	}
	if s.Player.JumpPhase >= 0 {
		t.Errorf("jump phase = %d, expected the descending half", s.Player.JumpPhase)
	}
}

func TestSideCollisions(t *testing.T) {
	tests := []struct {
		name  string
		plat  core.Rect
		start float64
		input core.Action
		wantX float64
	}{
		{"left edge", core.Rect{X: 142, Y: 300, W: 50, H: 80}, 100, core.ActionRight, 102},
		{"right edge", core.Rect{X: 10, Y: 300, W: 50, H: 80}, 62, core.ActionLeft, 60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := emptyArena()
			a.Platforms = []core.Rect{tc.plat}
			s := newSession(t, a, 50)
			s.Player.X = tc.start

			s.Step(core.FrameOf(tc.input))
			if s.Player.X != tc.wantX {
				t.Errorf("x = %v, expected %v", s.Player.X, tc.wantX)
			}
		})
	}
}

func TestObstaclePushBack(t *testing.T) {
	a := emptyArena()
	a.Obstacles = []core.Rect{{X: 142, Y: 340, W: 20, H: 40}}
	s := newSession(t, a, 50)
	s.Player.X = 100

	s.Step(core.FrameOf(core.ActionRight))
	if s.Player.X != 102 {
		t.Errorf("x = %v, expected pushed back to 102", s.Player.X)
	}
	if s.Player.Health != 100 {
		t.Errorf("health = %d, obstacles must not hurt", s.Player.Health)
	}
	if s.Player.Y != 330 || !s.Player.OnGround {
		t.Error("obstacles must not affect vertical position")
	}
}

func TestObstacleTieBreakFollowsListOrder(t *testing.T) {
	right := core.Rect{X: 130, Y: 340, W: 20, H: 40}
	left := core.Rect{X: 85, Y: 340, W: 20, H: 40}

	tests := []struct {
		name      string
		obstacles []core.Rect
		wantX     float64
	}{
		{"right then left", []core.Rect{right, left}, 105},
		{"left then right", []core.Rect{left, right}, 90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := emptyArena()
			a.Obstacles = tc.obstacles
			s := newSession(t, a, 50)
			s.Player.X = 100

			s.Step(idle())
			if s.Player.X != tc.wantX {
				t.Errorf("x = %v, expected the last correction to win (%v)", s.Player.X, tc.wantX)
			}
		})
	}
}

func TestCeilingClamp(t *testing.T) {
	a := emptyArena()
	a.TopBorder = 40
	s := newSession(t, a, 50)
	s.Player.Y = 45
	s.Player.Jumping = true
	s.Player.JumpPhase = 4

	s.Step(idle())
	if s.Player.Y != 40 {
		t.Errorf("y = %v, expected clamped to the top border", s.Player.Y)
	}
}
