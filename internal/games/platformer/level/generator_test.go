package level

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
)

const eps = 1e-9

func newGen(opts ...Option) *Generator {
	return NewGenerator(config.DefaultPlatformerConfig(), opts...)
}

func TestGenerateDeterministicLayout(t *testing.T) {
	g := newGen()
	for _, lvl := range []int{1, 7, 25, 26, 50} {
		a := g.Generate(lvl, 800, 400, rand.New(rand.NewSource(1)))
		b := g.Generate(lvl, 800, 400, rand.New(rand.NewSource(99)))

		if !reflect.DeepEqual(a.Platforms, b.Platforms) {
			t.Errorf("level %d: platforms differ between calls", lvl)
		}
		if !reflect.DeepEqual(a.Coins, b.Coins) {
			t.Errorf("level %d: coins differ between calls", lvl)
		}
		if !reflect.DeepEqual(a.Obstacles, b.Obstacles) {
			t.Errorf("level %d: obstacles differ between calls", lvl)
		}
		if !reflect.DeepEqual(a.HealthPickups, b.HealthPickups) {
			t.Errorf("level %d: health pickups differ between calls", lvl)
		}
		if a.Background != b.Background || a.Goal != b.Goal || a.Guardian != b.Guardian {
			t.Errorf("level %d: background/goal/guardian differ between calls", lvl)
		}
		if len(a.Enemies) != len(b.Enemies) {
			t.Errorf("level %d: enemy count differs: %d vs %d", lvl, len(a.Enemies), len(b.Enemies))
		}
	}
}

func TestGenerateSameSeedSameEnemies(t *testing.T) {
	g := newGen()
	a := g.Generate(30, 800, 400, rand.New(rand.NewSource(7)))
	b := g.Generate(30, 800, 400, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a.Enemies, b.Enemies) {
		t.Error("same seed should produce identical enemies")
	}
}

func TestGoalAnchoredAboveLastPlatform(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	sizes := [][2]float64{{800, 400}, {640, 360}}

	for _, legacy := range []bool{false, true} {
		var opts []Option
		if legacy {
			opts = append(opts, WithLegacy())
		}
		g := NewGenerator(cfg, opts...)
		for _, sz := range sizes {
			for lvl := 1; lvl <= g.MaxLevels(); lvl++ {
				a := g.Generate(lvl, sz[0], sz[1], rand.New(rand.NewSource(int64(lvl))))
				goal := a.GoalRect()

				if !goal.Within(a.Width, a.Height) {
					t.Fatalf("legacy=%v %vx%v level %d: goal %+v outside viewport", legacy, sz[0], sz[1], lvl, goal)
				}
				last := a.Platforms[len(a.Platforms)-1]
				if math.Abs(goal.Center().X-last.Center().X) > eps {
					t.Errorf("level %d: goal center x %v, last platform center x %v", lvl, goal.Center().X, last.Center().X)
				}
				if math.Abs(goal.Bottom()-(last.Y-cfg.Generator.Goal.Lift)) > eps {
					t.Errorf("level %d: goal bottom %v, expected %v", lvl, goal.Bottom(), last.Y-cfg.Generator.Goal.Lift)
				}
				if err := a.Validate(); err != nil {
					t.Errorf("level %d: Validate() = %v", lvl, err)
				}
			}
		}
	}
}

func TestPlatformsInsideViewport(t *testing.T) {
	g := newGen()
	for lvl := 1; lvl <= g.MaxLevels(); lvl++ {
		a := g.Generate(lvl, 800, 400, nil)
		for i, p := range a.Platforms {
			if !p.Within(a.Width, a.GroundY) {
				t.Errorf("level %d: platform %d %+v outside playable area", lvl, i, p)
			}
		}
	}
}

func TestGuardianLeftOfAndAboveGoal(t *testing.T) {
	g := newGen()
	for lvl := 1; lvl <= g.MaxLevels(); lvl++ {
		a := g.Generate(lvl, 800, 400, nil)
		gd := a.Guardian
		if gd.X > a.Goal.X || gd.Y > a.Goal.Y {
			t.Errorf("level %d: guardian at (%v, %v) not left of/above goal (%v, %v)", lvl, gd.X, gd.Y, a.Goal.X, a.Goal.Y)
		}
		if !gd.Within(a.Width, a.Height) {
			t.Errorf("level %d: guardian %+v outside viewport", lvl, gd.Rect)
		}
		if gd.Kind != MotionHorizontal || gd.PatrolMin != 0 || gd.PatrolMax != a.Width {
			t.Errorf("level %d: guardian should patrol the full width, got %+v", lvl, gd)
		}
	}
	if a, b := g.Generate(1, 800, 400, nil), g.Generate(50, 800, 400, nil); b.Guardian.Speed <= a.Guardian.Speed {
		t.Error("guardian speed should grow with level")
	}
}

func TestDensityMonotonic(t *testing.T) {
	g := newGen()
	prev := g.Generate(1, 800, 400, nil)
	for lvl := 2; lvl <= g.MaxLevels(); lvl++ {
		a := g.Generate(lvl, 800, 400, nil)
		counts := [][3]int{
			{len(prev.Platforms), len(a.Platforms), 0},
			{len(prev.Coins), len(a.Coins), 1},
			{len(prev.Obstacles), len(a.Obstacles), 2},
			{len(prev.Enemies), len(a.Enemies), 3},
		}
		for _, c := range counts {
			if c[1] < c[0] {
				t.Errorf("level %d: count %d decreased from %d to %d", lvl, c[2], c[0], c[1])
			}
		}
		if len(a.HealthPickups) > 3 {
			t.Errorf("level %d: %d health pickups, expected at most 3", lvl, len(a.HealthPickups))
		}
		prev = a
	}
}

func TestBackgroundEndpoints(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := NewGenerator(cfg)

	if got := g.Generate(1, 800, 400, nil).Background; got != cfg.Generator.Palette.Easy {
		t.Errorf("level 1 background = %+v, expected %+v", got, cfg.Generator.Palette.Easy)
	}
	if got := g.Generate(g.MaxLevels(), 800, 400, nil).Background; got != cfg.Generator.Palette.Hard {
		t.Errorf("last level background = %+v, expected %+v", got, cfg.Generator.Palette.Hard)
	}
	mid := g.Generate(25, 800, 400, nil).Background
	if mid.Luminance() >= cfg.Generator.Palette.Easy.Luminance() || mid.Luminance() <= cfg.Generator.Palette.Hard.Luminance() {
		t.Errorf("mid background %+v should sit between the endpoints", mid)
	}
}

func TestGenerateClampsLevel(t *testing.T) {
	g := newGen()

	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-4, 1},
		{51, 50},
		{1000, 50},
		{17, 17},
	}
	for _, tc := range tests {
		a := g.Generate(tc.in, 800, 400, nil)
		if a.Level != tc.want {
			t.Errorf("Generate(%d).Level = %d, expected %d", tc.in, a.Level, tc.want)
		}
	}

	low := g.Generate(0, 800, 400, nil)
	one := g.Generate(1, 800, 400, nil)
	if !reflect.DeepEqual(low.Platforms, one.Platforms) {
		t.Error("level 0 should produce the level 1 layout")
	}
}

func TestEnemyTiers(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := NewGenerator(cfg)
	lay := cfg.Generator.Enemies

	tests := []struct {
		level int
		kinds []MotionKind
	}{
		{1, []MotionKind{MotionStatic}},
		{lay.MidLevel - 1, []MotionKind{MotionStatic}},
		{lay.MidLevel, []MotionKind{MotionHorizontal, MotionVertical}},
		{lay.HighLevel - 1, []MotionKind{MotionHorizontal, MotionVertical}},
		{lay.HighLevel, []MotionKind{MotionDynamic}},
		{50, []MotionKind{MotionDynamic}},
	}
	for _, tc := range tests {
		a := g.Generate(tc.level, 800, 400, rand.New(rand.NewSource(3)))
		if len(a.Enemies) == 0 {
			t.Fatalf("level %d: no enemies", tc.level)
		}
		for i, e := range a.Enemies {
			ok := false
			for _, k := range tc.kinds {
				ok = ok || e.Kind == k
			}
			if !ok {
				t.Errorf("level %d: enemy %d kind %v, expected one of %v", tc.level, i, e.Kind, tc.kinds)
			}
			if e.X < lay.SafeZoneX {
				t.Errorf("level %d: enemy %d at x=%v inside the spawn safe zone", tc.level, i, e.X)
			}
			if e.Y < a.TopBorder || e.Bottom() > a.GroundY || e.Right() > a.Width {
				t.Errorf("level %d: enemy %d %+v outside the playable band", tc.level, i, e.Rect)
			}
		}
	}
}

func TestLegacyEnemiesPatrolPlatforms(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := NewGenerator(cfg, WithLegacy())

	if g.MaxLevels() != cfg.Levels.Legacy.Max {
		t.Errorf("MaxLevels() = %d, expected %d", g.MaxLevels(), cfg.Levels.Legacy.Max)
	}
	if got := g.Generate(g.MaxLevels(), 800, 400, nil).Background; got != cfg.Generator.Palette.Hard {
		t.Errorf("last legacy level background = %+v, expected hard color", got)
	}

	for lvl := 1; lvl <= g.MaxLevels(); lvl++ {
		a := g.Generate(lvl, 800, 400, rand.New(rand.NewSource(int64(lvl))))
		for i, e := range a.Enemies {
			if e.Kind != MotionPatrolBounded || !e.HasPatrol {
				t.Fatalf("level %d: enemy %d should be patrol-bounded, got %v", lvl, i, e.Kind)
			}
			if e.X < e.PatrolMin || e.Right() > e.PatrolMax+eps {
				t.Errorf("level %d: enemy %d at [%v, %v] outside patrol [%v, %v]", lvl, i, e.X, e.Right(), e.PatrolMin, e.PatrolMax)
			}
			onPlatform := false
			for _, p := range a.Platforms {
				if p.X == e.PatrolMin && math.Abs(e.Bottom()-p.Y) < eps {
					onPlatform = true
				}
			}
			if !onPlatform {
				t.Errorf("level %d: enemy %d does not stand on a platform", lvl, i)
			}
		}
	}
}

func TestLevelOneLayout(t *testing.T) {
	a := newGen().Generate(1, 800, 400, nil)

	want := []core.Rect{
		{X: 120, Y: 310, W: 140, H: 15},
		{X: 280, Y: 290, W: 140, H: 15},
		{X: 440, Y: 270, W: 140, H: 15},
		{X: 600, Y: 250, W: 140, H: 15},
	}
	if !reflect.DeepEqual(a.Platforms, want) {
		t.Errorf("level 1 platforms = %+v\nexpected %+v", a.Platforms, want)
	}
	if len(a.Coins) != 5 {
		t.Fatalf("expected 5 coins, got %d", len(a.Coins))
	}
	if a.Coins[0] != (core.Point{X: 190, Y: 285}) {
		t.Errorf("first coin = %+v, expected centered above the first platform", a.Coins[0])
	}
	if a.Goal != (core.Point{X: 650, Y: 190}) {
		t.Errorf("goal = %+v, expected (650, 190)", a.Goal)
	}
	if len(a.Obstacles) != 1 || a.Obstacles[0].Bottom() != a.GroundY {
		t.Errorf("expected one ground obstacle, got %+v", a.Obstacles)
	}
}

func TestValidateRejectsCorruptArena(t *testing.T) {
	good := newGen().Generate(5, 800, 400, nil)

	tests := []struct {
		name   string
		mutate func(a *Arena)
	}{
		{"zero viewport", func(a *Arena) { a.Width = 0 }},
		{"ground above ceiling", func(a *Arena) { a.GroundY = a.TopBorder }},
		{"goal outside", func(a *Arena) { a.Goal.X = a.Width }},
		{"empty platform", func(a *Arena) { a.Platforms[0].W = 0 }},
		{"bad direction", func(a *Arena) { a.Enemies[0].Direction = 0 }},
		{"patrol without bounds", func(a *Arena) {
			a.Guardian.Kind = MotionPatrolBounded
			a.Guardian.HasPatrol = false
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := good.Clone()
			tc.mutate(a)
			if err := a.Validate(); !errors.Is(err, ErrInvalidArena) {
				t.Errorf("Validate() = %v, expected ErrInvalidArena", err)
			}
		})
	}

	var nilArena *Arena
	if err := nilArena.Validate(); !errors.Is(err, ErrInvalidArena) {
		t.Errorf("nil Validate() = %v, expected ErrInvalidArena", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := newGen().Generate(3, 800, 400, nil)
	c := a.Clone()
	c.Coins = c.Coins[1:]
	c.Platforms[0].X = -1

	if len(a.Coins) == len(c.Coins) {
		t.Error("consuming coins in the clone should not affect the original")
	}
	if a.Platforms[0].X == -1 {
		t.Error("clone shares platform storage with the original")
	}
}
