// Package platformer implements the PyJump side-scrolling platformer as a
// registry game. The simulation lives in the sim package; this package maps
// platform actions onto the game flow and draws snapshots into a screen.
package platformer

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
	"github.com/vovakirdan/pyjump/internal/games/platformer/sim"
	"github.com/vovakirdan/pyjump/internal/progress"
	"github.com/vovakirdan/pyjump/internal/registry"
)

// Game mode identifiers.
const (
	ID       = "platformer"
	LegacyID = "platformer_legacy"
)

// Game implements registry.Game on top of a sim.Flow.
type Game struct {
	id     string
	title  string
	legacy bool

	cfg    config.PlatformerConfig
	store  progress.Store
	logger *log.Logger
	gen    *level.Generator

	flow   *sim.Flow
	cursor int // Highlighted choice on outcome screens
	score  int // Last score seen, kept after the session is dropped
}

// New creates the standard 50-level mode.
func New() *Game {
	return newGame(ID, "PyJump", false)
}

// NewLegacy creates the classic mode where enemies patrol platforms.
func NewLegacy() *Game {
	return newGame(LegacyID, "PyJump Classic", true)
}

func newGame(id, title string, legacy bool) *Game {
	g := &Game{id: id, title: title, legacy: legacy}
	g.Attach(registry.Host{})
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Attach installs platform services. A zero config falls back to the defaults.
func (g *Game) Attach(h registry.Host) {
	g.cfg = h.Config
	if g.cfg.Viewport.Width <= 0 || g.cfg.Viewport.Height <= 0 {
		g.cfg = config.DefaultPlatformerConfig()
	}
	g.logger = h.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.store = h.Progress
	if g.store == nil {
		g.store = progress.NewBestEffort(nil, g.logger)
	}

	var opts []level.Option
	if g.legacy {
		opts = append(opts, level.WithLegacy())
	}
	g.gen = level.NewGenerator(g.cfg, opts...)
}

// MaxLevels returns the campaign length.
func (g *Game) MaxLevels() int {
	return g.gen.MaxLevels()
}

// Watermark returns the highest unlocked level.
func (g *Game) Watermark() int {
	if g.flow != nil {
		return g.flow.Watermark()
	}
	return g.gen.ClampLevel(g.store.Load())
}

// DisplayMax returns the level count shown on outcome screens.
func (g *Game) DisplayMax() int {
	if g.legacy {
		return g.cfg.Levels.Legacy.DisplayMax
	}
	return g.cfg.Levels.DisplayMax
}

// Flow exposes the underlying flow, nil before Reset.
func (g *Game) Flow() *sim.Flow {
	return g.flow
}

// Cursor returns the highlighted outcome choice.
func (g *Game) Cursor() int {
	return g.cursor
}

// Reset starts a fresh run at cfg.Level. The arena is laid out in the
// configured pixel viewport; the terminal size only affects rendering.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cursor = 0
	g.score = 0
	g.flow = sim.NewFlow(g.cfg, g.gen, g.store, sim.FlowOptions{
		Seed:       cfg.Seed,
		DisplayMax: g.DisplayMax(),
		Logger:     g.logger,
	})
	if err := g.flow.Start(cfg.Level); err != nil {
		g.logger.Error("level start failed", "game", g.id, "lvl", cfg.Level, "err", err)
		g.flow.Quit()
	}
}

// Step advances the game by one tick, or handles outcome-screen input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.flow == nil {
		return core.StepResult{}
	}

	switch state := g.flow.State(); {
	case state == sim.StatePlaying:
		g.flow.Step(in)
		g.cursor = 0
	case state.Outcome():
		g.choose(in)
	case in.Has(core.ActionQuit):
		g.flow.Quit()
	}
	if s := g.flow.Session(); s != nil {
		g.score = s.Player.Score
	}
	return core.StepResult{State: g.State()}
}

// choose maps discrete actions onto the offered choices.
func (g *Game) choose(in core.InputFrame) {
	choices := g.flow.Choices()
	if len(choices) == 0 {
		return
	}
	g.cursor = core.Clamp(g.cursor, 0, len(choices)-1)

	c := sim.ChoiceNone
	switch {
	case in.Has(core.ActionQuit):
		c = sim.ChoiceQuit
	case in.Has(core.ActionBack):
		c = sim.ChoiceMenu
	case in.Has(core.ActionRestart) && slices.Contains(choices, sim.ChoiceRetry):
		c = sim.ChoiceRetry
	case in.Has(core.ActionConfirm):
		c = choices[g.cursor]
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor + len(choices) - 1) % len(choices)
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(choices)
	}
	if c == sim.ChoiceNone {
		return
	}

	if err := g.flow.Choose(c); err != nil {
		g.logger.Warn("choice rejected", "choice", c, "err", err)
		return
	}
	g.cursor = 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.flow == nil {
		return core.GameState{}
	}
	state := g.flow.State()
	return core.GameState{
		Score:    g.score,
		Level:    g.flow.Level(),
		GameOver: state == sim.StateDead || state == sim.StateVictory,
		Paused:   g.flow.Paused() || state.Outcome(),
		Quit:     state == sim.StateQuit,
		Menu:     state == sim.StateMenu,
	}
}

// Register the game modes with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
	registry.Register(LegacyID, func() registry.Game {
		return NewLegacy()
	})
}
