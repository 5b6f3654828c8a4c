package platformer

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
	"github.com/vovakirdan/pyjump/internal/progress"
	"github.com/vovakirdan/pyjump/internal/registry"
)

func startGame(t *testing.T, g *Game, lvl int) {
	t.Helper()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, Level: lvl})
	if g.Flow() == nil || g.Flow().Session() == nil {
		t.Fatal("Reset should start a session")
	}
}

// kill parks the first enemy on the player and leaves it one hit from death.
func kill(t *testing.T, g *Game) {
	t.Helper()
	s := g.Flow().Session()
	e := &s.Arena.Enemies[0]
	e.Kind = level.MotionStatic
	e.X, e.Y = s.Player.X, s.Player.Y
	s.Player.Health = 1
	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("player should be dead")
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{ID, LegacyID} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if _, ok := g.(registry.Campaign); !ok {
			t.Errorf("%q should expose its campaign", id)
		}
	}
}

func TestModeLevelCounts(t *testing.T) {
	if got := New().MaxLevels(); got != 50 {
		t.Errorf("standard MaxLevels() = %d, expected 50", got)
	}
	if got := NewLegacy().MaxLevels(); got != 20 {
		t.Errorf("legacy MaxLevels() = %d, expected 20", got)
	}
}

func TestWatermarkFromHost(t *testing.T) {
	tests := []struct {
		name  string
		game  *Game
		saved int
		want  int
	}{
		{"nothing saved", New(), 0, 1},
		{"saved", New(), 7, 7},
		{"clamped to campaign", NewLegacy(), 35, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.game.Attach(registry.Host{
				Config:   config.DefaultPlatformerConfig(),
				Progress: progress.NewBestEffort(progress.NewMemory(tc.saved), nil),
			})
			if got := tc.game.Watermark(); got != tc.want {
				t.Errorf("Watermark() = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestResetStartsAtLevel(t *testing.T) {
	g := New()
	startGame(t, g, 7)

	st := g.State()
	if st.Level != 7 || st.GameOver || st.Paused || st.Quit || st.Menu {
		t.Errorf("State() = %+v, expected level 7 playing", st)
	}
}

func TestDeathScreenRetry(t *testing.T) {
	g := NewLegacy()
	startGame(t, g, 1)
	kill(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level Reached: 1/20") {
		t.Errorf("death screen should report the level reached:\n%s", screen.String())
	}
	if !g.State().Paused {
		t.Error("outcome screens should report as paused")
	}

	g.Step(core.FrameOf(core.ActionRestart))
	st := g.State()
	if st.GameOver || st.Level != 1 {
		t.Errorf("State() after retry = %+v", st)
	}
	if p := g.Flow().Session().Player; p.Health != p.MaxHealth {
		t.Errorf("health after retry = %d, expected %d", p.Health, p.MaxHealth)
	}
}

func TestOutcomeCursor(t *testing.T) {
	g := New()
	startGame(t, g, 1)
	g.Flow().Session().Player.Score = 30
	g.Step(core.NewInputFrame())
	kill(t, g)

	g.Step(core.FrameOf(core.ActionDown))
	if g.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, expected 1", g.Cursor())
	}
	g.Step(core.FrameOf(core.ActionConfirm))

	st := g.State()
	if !st.Menu {
		t.Errorf("confirming the second choice should return to the menu, got %+v", st)
	}
	if st.Score < 30 {
		t.Errorf("Score = %d, expected the run's score to survive the menu", st.Score)
	}
}

func TestCursorWraps(t *testing.T) {
	g := New()
	startGame(t, g, 1)
	kill(t, g)

	g.Step(core.FrameOf(core.ActionUp))
	if g.Cursor() != 2 {
		t.Errorf("Cursor() = %d, expected wrap to 2", g.Cursor())
	}
}

func TestQuitWhilePlaying(t *testing.T) {
	g := New()
	startGame(t, g, 1)

	g.Step(core.FrameOf(core.ActionQuit))
	if !g.State().Quit {
		t.Error("quit action should end the game")
	}
}

func TestRenderHUDAndBackground(t *testing.T) {
	g := New()
	startGame(t, g, 1)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.HasPrefix(screen.Row(0), " Level 1/50  Score 0  HP 100/100") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	bg, ok := screen.Background()
	if !ok || bg != g.Flow().Session().Arena.Background {
		t.Errorf("Background() = %+v, %v", bg, ok)
	}
	if !strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("player should be drawn")
	}
	if !strings.ContainsAny(screen.String(), string([]rune{FlagChar, GoalChar})) {
		t.Error("goal should be drawn")
	}
}

func TestRenderPaused(t *testing.T) {
	g := New()
	startGame(t, g, 1)
	g.Step(core.FrameOf(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay should be drawn")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := New()
	startGame(t, g, 1)

	screen := core.NewScreen(3, 1)
	g.Render(screen)
	if _, ok := screen.Background(); ok {
		t.Error("a screen with no room below the HUD should stay blank")
	}
}
