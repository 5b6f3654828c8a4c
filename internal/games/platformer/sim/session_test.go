package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
)

// emptyArena is an 800x400 arena with nothing near the spawn point.
func emptyArena() *level.Arena {
	return &level.Arena{
		Level:     1,
		Width:     800,
		Height:    400,
		GroundY:   380,
		TopBorder: 0,
		Goal:      core.Point{X: 700, Y: 330},
		GoalW:     40,
		GoalH:     50,
		Guardian: level.Enemy{
			Rect:      core.NewRect(0, 0, 40, 40),
			Direction: 1,
			Kind:      level.MotionStatic,
		},
	}
}

func staticEnemy(x, y float64) level.Enemy {
	return level.Enemy{Rect: core.NewRect(x, y, 30, 30), Direction: 1, Kind: level.MotionStatic}
}

func newSession(t *testing.T, a *level.Arena, maxLevels int) *Session {
	t.Helper()
	s, err := NewSession(config.DefaultPlatformerConfig(), a, SessionOptions{
		MaxLevels: maxLevels,
		Rng:       rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func TestNewSessionSpawn(t *testing.T) {
	s := newSession(t, emptyArena(), 50)
	p := s.Player

	if p.X != 50 || p.Y != 330 || p.W != 40 || p.H != 50 {
		t.Errorf("spawn rect = %+v, expected (50, 330, 40, 50)", p.Rect)
	}
	if !p.OnGround || p.Jumping {
		t.Error("player should spawn standing on the ground")
	}
	if p.Health != 100 || p.MaxHealth != 100 {
		t.Errorf("health = %d/%d, expected 100/100", p.Health, p.MaxHealth)
	}
	if s.JumpHeight() != 12 {
		t.Errorf("JumpHeight() = %d, expected 12", s.JumpHeight())
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, expected playing", s.State())
	}
}

func TestNewSessionRejectsCorruptArena(t *testing.T) {
	a := emptyArena()
	a.GoalW = 0

	_, err := NewSession(config.DefaultPlatformerConfig(), a, SessionOptions{})
	if !errors.Is(err, level.ErrInvalidArena) {
		t.Errorf("NewSession() error = %v, expected ErrInvalidArena", err)
	}
}

func TestNewSessionDoesNotMutateArena(t *testing.T) {
	a := emptyArena()
	a.Coins = []core.Point{{X: 70, Y: 350}}
	s := newSession(t, a, 50)

	s.Step(idle())
	if len(s.Arena.Coins) != 0 {
		t.Fatal("coin at spawn should be collected")
	}
	if len(a.Coins) != 1 {
		t.Error("session consumed coins of the caller's arena")
	}
}

func TestJumpReturnsToGround(t *testing.T) {
	s := newSession(t, emptyArena(), 50)
	j := s.JumpHeight()

	s.Step(core.FrameOf(core.ActionJump))
	minY := s.Player.Y
	for range 2 * j {
		if s.Player.OnGround {
			t.Fatalf("landed early at tick %d", s.Tick())
		}
		s.Step(idle())
		minY = min(minY, s.Player.Y)
	}

	p := s.Player
	if p.Y != 330 || !p.OnGround || p.Jumping {
		t.Errorf("after %d ticks: y=%v onGround=%v jumping=%v, expected back on the ground", 2*j+1, p.Y, p.OnGround, p.Jumping)
	}
	if want := 330 - JumpApex(j); minY != want {
		t.Errorf("apex y = %v, expected %v", minY, want)
	}
	if minY < 0 {
		t.Errorf("apex %v crosses the top border", minY)
	}
}

func TestJumpRequiresGround(t *testing.T) {
	s := newSession(t, emptyArena(), 50)
	s.Player.Y = 100
	s.Player.OnGround = false

	s.Step(core.FrameOf(core.ActionJump))
	if s.Player.Jumping {
		t.Error("jump should not trigger in mid-air")
	}
	if s.Player.Y != 105 {
		t.Errorf("y = %v, expected gravity to move the player to 105", s.Player.Y)
	}
}

func TestGravityFallsToGround(t *testing.T) {
	s := newSession(t, emptyArena(), 50)
	s.Player.Y = 100

	for range 45 {
		s.Step(idle())
	}
	if s.Player.Y != 325 || s.Player.OnGround {
		t.Fatalf("after 45 ticks y=%v onGround=%v, expected 325 and falling", s.Player.Y, s.Player.OnGround)
	}
	s.Step(idle())
	if s.Player.Y != 330 || !s.Player.OnGround {
		t.Errorf("after 46 ticks y=%v onGround=%v, expected landed at 330", s.Player.Y, s.Player.OnGround)
	}
}

func TestHorizontalMovementClamped(t *testing.T) {
	s := newSession(t, emptyArena(), 50)

	s.Step(core.FrameOf(core.ActionRight))
	if s.Player.X != 55 {
		t.Errorf("x = %v, expected 55", s.Player.X)
	}
	for range 20 {
		s.Step(core.FrameOf(core.ActionLeft))
	}
	if s.Player.X != 0 {
		t.Errorf("x = %v, expected clamped to 0", s.Player.X)
	}
	s.Step(core.FrameOf(core.ActionLeft, core.ActionRight))
	if s.Player.X != 0 {
		t.Errorf("opposite keys should cancel, x = %v", s.Player.X)
	}
}

func TestCoinPickupScenario(t *testing.T) {
	a := emptyArena()
	a.Coins = []core.Point{{X: 110, Y: 110}, {X: 600, Y: 100}}
	s := newSession(t, a, 50)
	s.Player.Rect = core.NewRect(100, 100, 40, 50)

	s.collectCoins()

	if len(s.Arena.Coins) != 1 || s.Arena.Coins[0] != (core.Point{X: 600, Y: 100}) {
		t.Errorf("coins = %+v, expected only the far coin left", s.Arena.Coins)
	}
	if s.Player.Score != 10 {
		t.Errorf("score = %d, expected 10", s.Player.Score)
	}
	if s.Player.Power.Coins != 1 {
		t.Errorf("power coins = %d, expected 1", s.Player.Power.Coins)
	}

	// Collected coins are gone from the broadphase too
	s.collectCoins()
	if s.Player.Score != 10 {
		t.Errorf("score = %d after second pass, expected 10", s.Player.Score)
	}
}

func TestCoinPickupDuringStep(t *testing.T) {
	a := emptyArena()
	a.Coins = []core.Point{{X: 110, Y: 110}}
	s := newSession(t, a, 50)
	s.Player.Rect = core.NewRect(100, 100, 40, 50)

	s.Step(idle())
	if len(s.Arena.Coins) != 0 || s.Player.Score != 10 || s.Player.Power.Coins != 1 {
		t.Errorf("coins=%d score=%d power=%d, expected 0/10/1", len(s.Arena.Coins), s.Player.Score, s.Player.Power.Coins)
	}
}

func TestFatalHitScenario(t *testing.T) {
	a := emptyArena()
	a.Enemies = []level.Enemy{staticEnemy(60, 340)}
	s := newSession(t, a, 50)
	s.Player.Health = 15

	res := s.Step(idle())
	if s.Player.Health != 0 {
		t.Errorf("health = %d, expected clamped to 0", s.Player.Health)
	}
	if res.State != StateDead || s.State() != StateDead {
		t.Errorf("state = %v, expected dead", res.State)
	}

	tick := s.Tick()
	s.Step(core.FrameOf(core.ActionRight))
	if s.Tick() != tick {
		t.Error("a dead session should not advance")
	}
}

func TestDamageGrantsInvincibility(t *testing.T) {
	a := emptyArena()
	a.Enemies = []level.Enemy{staticEnemy(60, 340)}
	s := newSession(t, a, 50)
	cfg := config.DefaultPlatformerConfig()

	s.Step(idle())
	if s.Player.Health != 80 {
		t.Fatalf("health = %d after first hit, expected 80", s.Player.Health)
	}
	if s.Player.InvincibleTicks != cfg.Combat.InvincibleTicks {
		t.Errorf("invincible ticks = %d, expected the full window %d", s.Player.InvincibleTicks, cfg.Combat.InvincibleTicks)
	}

	// Protected for exactly InvincibleTicks ticks after the hit
	for range cfg.Combat.InvincibleTicks {
		s.Step(idle())
	}
	if s.Player.Health != 80 {
		t.Errorf("health = %d during invincibility, expected 80", s.Player.Health)
	}
	s.Step(idle())
	if s.Player.Health != 60 {
		t.Errorf("health = %d after invincibility ran out, expected 60", s.Player.Health)
	}
}

func TestGuardianHitsHarder(t *testing.T) {
	a := emptyArena()
	a.Guardian.Rect = core.NewRect(60, 340, 40, 40)
	s := newSession(t, a, 50)

	s.Step(idle())
	if s.Player.Health != 60 {
		t.Errorf("health = %d, expected 60 after a guardian hit", s.Player.Health)
	}
}

func TestOneHitPerTick(t *testing.T) {
	a := emptyArena()
	a.Enemies = []level.Enemy{staticEnemy(60, 340), staticEnemy(50, 350)}
	a.Guardian.Rect = core.NewRect(55, 340, 40, 40)
	s := newSession(t, a, 50)

	s.Step(idle())
	if s.Player.Health != 80 {
		t.Errorf("health = %d, expected a single regular hit (80)", s.Player.Health)
	}
}

func TestHealthPickupCapped(t *testing.T) {
	tests := []struct {
		name   string
		health int
		want   int
	}{
		{"partial heal", 50, 75},
		{"capped at max", 90, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := emptyArena()
			a.HealthPickups = []core.Point{{X: 70, Y: 360}}
			s := newSession(t, a, 50)
			s.Player.Health = tc.health

			s.Step(idle())
			if s.Player.Health != tc.want {
				t.Errorf("health = %d, expected %d", s.Player.Health, tc.want)
			}
			if len(s.Arena.HealthPickups) != 0 {
				t.Error("pickup should be consumed")
			}
		})
	}
}

func TestHealthBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := Player{Health: 100, MaxHealth: 100}
	for i := range 1000 {
		amount := rng.Intn(60)
		if rng.Intn(2) == 0 {
			p.Damage(amount)
		} else {
			p.Heal(amount)
		}
		if p.Health < 0 || p.Health > p.MaxHealth {
			t.Fatalf("step %d: health %d outside [0, %d]", i, p.Health, p.MaxHealth)
		}
	}
}

func TestPowerUpGating(t *testing.T) {
	a := emptyArena()
	a.Enemies = []level.Enemy{staticEnemy(60, 340)}
	s := newSession(t, a, 50)
	cfg := config.DefaultPlatformerConfig()

	// Not enough coins: activation is a no-op and the enemy hurts
	s.Player.Power.Coins = cfg.PowerUp.Threshold - 1
	s.Step(core.FrameOf(core.ActionActivate))
	if s.Player.Power.Active() {
		t.Fatal("power activated below the threshold")
	}
	if s.Player.Power.Coins != cfg.PowerUp.Threshold-1 {
		t.Errorf("coins = %d, expected unchanged", s.Player.Power.Coins)
	}
	if s.Player.Health != 80 {
		t.Fatalf("health = %d, expected 80", s.Player.Health)
	}

	s = newSession(t, a, 50)
	s.Player.Power.Coins = cfg.PowerUp.Threshold
	s.Step(core.FrameOf(core.ActionActivate))
	if !s.Player.Power.Active() || s.Player.Power.Coins != 0 {
		t.Fatalf("power = %+v, expected active with coins reset", s.Player.Power)
	}
	for range cfg.PowerUp.DurationTicks - 1 {
		s.Step(idle())
	}
	if s.Player.Health != 100 {
		t.Errorf("health = %d while powered up, expected 100", s.Player.Health)
	}
	if s.Player.Power.Active() {
		t.Error("power should have run out")
	}
	s.Step(idle())
	if s.Player.Health != 80 {
		t.Errorf("health = %d after power ran out, expected 80", s.Player.Health)
	}
}

func TestGoalOutcome(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		maxLevels int
		want      State
	}{
		{"mid campaign", 3, 50, StateLevelComplete},
		{"final level", 50, 50, StateVictory},
		{"legacy final level", 20, 20, StateVictory},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := emptyArena()
			a.Level = tc.level
			a.Goal = core.Point{X: 60, Y: 330}
			s := newSession(t, a, tc.maxLevels)

			if res := s.Step(idle()); res.State != tc.want {
				t.Errorf("state = %v, expected %v", res.State, tc.want)
			}
		})
	}
}

func TestQuitInput(t *testing.T) {
	s := newSession(t, emptyArena(), 50)
	if res := s.Step(core.FrameOf(core.ActionQuit, core.ActionRight)); res.State != StateQuit {
		t.Errorf("state = %v, expected quit", res.State)
	}
	if s.Player.X != 50 {
		t.Error("quit tick should not move the player")
	}
}
