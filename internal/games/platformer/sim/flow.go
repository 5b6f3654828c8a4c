package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
	"github.com/vovakirdan/pyjump/internal/progress"
)

// ErrInvalidChoice is returned when a choice is not offered in the current state.
var ErrInvalidChoice = errors.New("sim: invalid choice")

// Choice is a discrete decision taken on an outcome screen.
type Choice int

const (
	ChoiceNone     Choice = iota // No decision yet
	ChoiceContinue               // Next level, keeping score and health
	ChoiceRetry                  // Same level again
	ChoiceMenu                   // Back to level select
	ChoiceQuit
)

// String returns a human-readable name for the choice.
func (c Choice) String() string {
	switch c {
	case ChoiceNone:
		return "none"
	case ChoiceContinue:
		return "continue"
	case ChoiceRetry:
		return "retry"
	case ChoiceMenu:
		return "menu"
	case ChoiceQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Screen describes an outcome screen for the UI.
type Screen struct {
	State      State
	Level      int
	DisplayMax int // Denominator of "Level Reached: N/M"
	Score      int
	Choices    []Choice
}

// FlowOptions configures a Flow.
type FlowOptions struct {
	Width, Height float64 // Arena size; zero uses the configured viewport
	Seed          int64
	DisplayMax    int         // Zero uses the generator's level count
	Logger        *log.Logger // nil discards
}

// Flow sequences sessions: playing, the outcome screens and level-to-level
// transitions. It owns the session and the progress watermark.
type Flow struct {
	cfg        config.PlatformerConfig
	gen        *level.Generator
	store      progress.Store
	rng        *rand.Rand
	log        *log.Logger
	width      float64
	height     float64
	displayMax int

	session    *Session
	state      State
	paused     bool
	level      int
	levelScore int // Score when the current level was entered
	watermark  int
}

// NewFlow creates a flow in StateMenu. It reads the watermark once.
func NewFlow(cfg config.PlatformerConfig, gen *level.Generator, store progress.Store, opts FlowOptions) *Flow {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if store == nil {
		store = progress.NewBestEffort(nil, logger)
	}
	displayMax := opts.DisplayMax
	if displayMax <= 0 {
		displayMax = gen.MaxLevels()
	}

	f := &Flow{
		cfg:        cfg,
		gen:        gen,
		store:      store,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		log:        logger,
		width:      opts.Width,
		height:     opts.Height,
		displayMax: displayMax,
		state:      StateMenu,
		level:      1,
	}
	f.watermark = core.Clamp(store.Load(), 1, gen.MaxLevels())
	return f
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// Paused reports whether simulation is suspended.
func (f *Flow) Paused() bool {
	return f.paused
}

// Level returns the current level.
func (f *Flow) Level() int {
	return f.level
}

// MaxLevels returns the campaign length.
func (f *Flow) MaxLevels() int {
	return f.gen.MaxLevels()
}

// Watermark returns the highest unlocked level.
func (f *Flow) Watermark() int {
	return f.watermark
}

// Session returns the running session, nil before Start.
func (f *Flow) Session() *Session {
	return f.session
}

// Start begins a fresh run at level, clamped to [1, MaxLevels].
func (f *Flow) Start(lvl int) error {
	return f.enter(f.gen.ClampLevel(lvl), Carry{})
}

func (f *Flow) enter(lvl int, carry Carry) error {
	arena := f.gen.Generate(lvl, f.width, f.height, f.rng)
	s, err := NewSession(f.cfg, arena, SessionOptions{
		MaxLevels: f.gen.MaxLevels(),
		Carry:     carry,
		Rng:       f.rng,
		Logger:    f.log,
	})
	if err != nil {
		return fmt.Errorf("sim: enter level %d: %w", lvl, err)
	}
	f.session = s
	f.level = lvl
	f.levelScore = carry.Score
	f.paused = false
	f.transition(StatePlaying)
	return nil
}

// Step advances the running session by one tick. A pause action toggles the
// pause; outcome screens and pause block simulation.
func (f *Flow) Step(in core.InputFrame) StepResult {
	if f.state != StatePlaying || f.session == nil {
		return StepResult{State: f.state}
	}
	if in.Has(core.ActionPause) {
		f.paused = !f.paused
	}
	if f.paused && !in.Has(core.ActionQuit) {
		return StepResult{State: f.state, Tick: f.session.Tick()}
	}

	res := f.session.Step(in)
	switch res.State {
	case StateLevelComplete, StateVictory:
		f.unlockNext()
	}
	if res.State != f.state {
		f.transition(res.State)
	}
	return res
}

// unlockNext advances the watermark past the level just cleared.
func (f *Flow) unlockNext() {
	next := min(f.level+1, f.gen.MaxLevels())
	if next <= f.watermark {
		return
	}
	f.watermark = next
	f.store.Save(next)
	f.log.Debug("progress unlocked", "lvl", next)
}

// Choices returns the choices offered in the current state.
func (f *Flow) Choices() []Choice {
	switch f.state {
	case StateDead:
		return []Choice{ChoiceRetry, ChoiceMenu, ChoiceQuit}
	case StateLevelComplete:
		return []Choice{ChoiceContinue, ChoiceMenu, ChoiceQuit}
	case StateVictory:
		return []Choice{ChoiceMenu, ChoiceQuit}
	default:
		return nil
	}
}

// Screen describes the current outcome screen.
func (f *Flow) Screen() Screen {
	score := 0
	if f.session != nil {
		score = f.session.Player.Score
	}
	return Screen{
		State:      f.state,
		Level:      f.level,
		DisplayMax: f.displayMax,
		Score:      score,
		Choices:    f.Choices(),
	}
}

// Choose applies a decision taken on an outcome screen.
func (f *Flow) Choose(c Choice) error {
	if !slices.Contains(f.Choices(), c) {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidChoice, c, f.state)
	}

	switch c {
	case ChoiceContinue:
		p := f.session.Player
		return f.enter(f.level+1, Carry{Score: p.Score, Health: p.Health})
	case ChoiceRetry:
		return f.enter(f.level, Carry{Score: f.levelScore})
	case ChoiceMenu:
		f.session = nil
		f.transition(StateMenu)
	case ChoiceQuit:
		f.transition(StateQuit)
	}
	return nil
}

// Quit leaves the flow from any state.
func (f *Flow) Quit() {
	if f.session != nil {
		f.session.Quit()
	}
	f.transition(StateQuit)
}

// Snapshot copies the running session for rendering.
func (f *Flow) Snapshot() Snapshot {
	if f.session == nil {
		return Snapshot{Level: f.level, MaxLevels: f.gen.MaxLevels(), State: f.state}
	}
	snap := f.session.Snapshot()
	snap.State = f.state
	snap.Paused = f.paused
	return snap
}

func (f *Flow) transition(to State) {
	if f.state == to {
		return
	}
	f.log.Debug("flow transition", "from", f.state, "to", to, "lvl", f.level)
	f.state = to
}
