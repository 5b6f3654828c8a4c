package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
)

func TestAdvance(t *testing.T) {
	b := Bounds{MinX: 0, MaxX: 800, MinY: 0, MaxY: 380}

	tests := []struct {
		name    string
		enemy   level.Enemy
		wantX   float64
		wantY   float64
		wantDir int
	}{
		{
			name:    "static",
			enemy:   level.Enemy{Rect: core.NewRect(10, 10, 30, 30), Speed: 5, Direction: 1, Kind: level.MotionStatic},
			wantX:   10,
			wantY:   10,
			wantDir: 1,
		},
		{
			name:    "horizontal step",
			enemy:   level.Enemy{Rect: core.NewRect(100, 10, 30, 30), Speed: 5, Direction: -1, Kind: level.MotionHorizontal},
			wantX:   95,
			wantY:   10,
			wantDir: -1,
		},
		{
			name:    "horizontal bounce right",
			enemy:   level.Enemy{Rect: core.NewRect(765, 10, 30, 30), Speed: 10, Direction: 1, Kind: level.MotionHorizontal},
			wantX:   770,
			wantY:   10,
			wantDir: -1,
		},
		{
			name:    "horizontal bounce left",
			enemy:   level.Enemy{Rect: core.NewRect(3, 10, 30, 30), Speed: 10, Direction: -1, Kind: level.MotionHorizontal},
			wantX:   0,
			wantY:   10,
			wantDir: 1,
		},
		{
			name:    "vertical bounce top",
			enemy:   level.Enemy{Rect: core.NewRect(100, 5, 30, 30), Speed: 10, Direction: -1, Kind: level.MotionVertical},
			wantX:   100,
			wantY:   0,
			wantDir: 1,
		},
		{
			name:    "vertical bounce ground",
			enemy:   level.Enemy{Rect: core.NewRect(100, 345, 30, 30), Speed: 10, Direction: 1, Kind: level.MotionVertical},
			wantX:   100,
			wantY:   350,
			wantDir: -1,
		},
		{
			name: "patrol uses platform edges",
			enemy: level.Enemy{
				Rect: core.NewRect(165, 10, 30, 30), Speed: 10, Direction: 1, Kind: level.MotionPatrolBounded,
				PatrolMin: 100, PatrolMax: 200, HasPatrol: true,
			},
			wantX:   170,
			wantY:   10,
			wantDir: -1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.enemy
			Advance(&e, b, nil)
			if e.X != tc.wantX || e.Y != tc.wantY || e.Direction != tc.wantDir {
				t.Errorf("got (%v, %v) dir %d, expected (%v, %v) dir %d", e.X, e.Y, e.Direction, tc.wantX, tc.wantY, tc.wantDir)
			}
		})
	}
}

func TestDynamicZigzagStaysInBounds(t *testing.T) {
	b := Bounds{MinX: 0, MaxX: 800, MinY: 0, MaxY: 380}
	e := level.Enemy{Rect: core.NewRect(400, 200, 30, 30), Speed: 3, Direction: 1, VDirection: 1, Kind: level.MotionDynamic}
	rng := rand.New(rand.NewSource(5))

	ups, downs := 0, 0
	for i := range 2000 {
		prevX, prevY := e.X, e.Y
		Advance(&e, b, rng)
		if e.X < b.MinX || e.Right() > b.MaxX || e.Y < b.MinY || e.Bottom() > b.MaxY {
			t.Fatalf("tick %d: enemy %+v left the bounds", i, e.Rect)
		}
		if math.Abs(e.X-prevX) > e.Speed || math.Abs(e.Y-prevY) > e.Speed {
			t.Fatalf("tick %d: moved more than its speed", i)
		}
		if e.Y < prevY {
			ups++
		} else if e.Y > prevY {
			downs++
		}
	}
	if ups == 0 || downs == 0 {
		t.Errorf("zigzag should move both ways, got %d up and %d down", ups, downs)
	}
}

func TestGuardianPatrolsFullWidth(t *testing.T) {
	a := emptyArena()
	a.Guardian = level.Enemy{
		Rect: core.NewRect(730, 0, 40, 40), Speed: 20, Direction: 1, Kind: level.MotionHorizontal,
		PatrolMin: 0, PatrolMax: 800, HasPatrol: true,
	}
	s := newSession(t, a, 50)

	s.Step(idle())
	s.Step(idle())
	if g := s.Arena.Guardian; g.X != 760 || g.Direction != -1 {
		t.Errorf("guardian at %v dir %d, expected bounced at 760", g.X, g.Direction)
	}
}

func TestJumpArcSymmetric(t *testing.T) {
	for j := 1; j <= 20; j++ {
		arc := JumpArc(j)
		if len(arc) != 2*j+1 {
			t.Fatalf("J=%d: arc length %d, expected %d", j, len(arc), 2*j+1)
		}
		sum := 0.0
		for k := range arc {
			if arc[k] != -arc[len(arc)-1-k] {
				t.Errorf("J=%d: rise %v at %d does not mirror fall %v", j, arc[k], k, arc[len(arc)-1-k])
			}
			sum += arc[k]
		}
		if sum != 0 {
			t.Errorf("J=%d: net displacement %v, expected 0", j, sum)
		}
		if arc[j] != 0 {
			t.Errorf("J=%d: displacement at c=0 is %v", j, arc[j])
		}
	}
	if JumpApex(12) != 325 {
		t.Errorf("JumpApex(12) = %v, expected 325", JumpApex(12))
	}
}

func TestPowerUpCounterSaturates(t *testing.T) {
	p := NewPowerUp(3, 10)
	for range 10 {
		p.AddCoin()
	}
	if p.Coins != 3 {
		t.Errorf("coins = %d, expected saturated at 3", p.Coins)
	}
	if !p.TryActivate() || p.TryActivate() {
		t.Error("expected exactly one successful activation")
	}
	for range 10 {
		p.Tick()
	}
	if p.Active() || p.TicksRemaining != 0 {
		t.Errorf("power = %+v, expected inactive after its duration", p)
	}
}
