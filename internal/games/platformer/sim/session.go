package sim

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
)

// State is the game flow state.
type State int

const (
	StatePlaying State = iota
	StateDead
	StateLevelComplete
	StateVictory
	StateQuit
	StateMenu // Back at level select, waiting for Start
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	case StateLevelComplete:
		return "level_complete"
	case StateVictory:
		return "victory"
	case StateQuit:
		return "quit"
	case StateMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Outcome reports whether the state ends a session.
func (s State) Outcome() bool {
	return s == StateDead || s == StateLevelComplete || s == StateVictory
}

// StepResult is returned by Session.Step after each tick.
type StepResult struct {
	State State
	Tick  int
}

// Session is one attempt at one level. It owns its arena copy and player.
type Session struct {
	Arena     *level.Arena
	Player    Player
	Level     int
	MaxLevels int

	cfg        config.PlatformerConfig
	jumpHeight int
	state      State
	tick       int
	rng        *rand.Rand
	world      *world
	log        *log.Logger
}

// SessionOptions configures a new session.
type SessionOptions struct {
	MaxLevels int
	Carry     Carry
	Rng       *rand.Rand  // Drives dynamic enemies; nil seeds from the level
	Logger    *log.Logger // nil discards
}

// NewSession starts an attempt at arena. The arena is cloned; the caller's
// copy is never mutated. A corrupt arena fails with level.ErrInvalidArena.
func NewSession(cfg config.PlatformerConfig, arena *level.Arena, opts SessionOptions) (*Session, error) {
	if err := arena.Validate(); err != nil {
		return nil, fmt.Errorf("sim: new session: %w", err)
	}
	a := arena.Clone()

	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(a.Level)))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		Arena:      a,
		Level:      a.Level,
		MaxLevels:  max(opts.MaxLevels, a.Level),
		cfg:        cfg,
		jumpHeight: jumpHeightFor(cfg, a),
		state:      StatePlaying,
		rng:        rng,
		world:      newWorld(a, cfg.Combat.CoinRadius, cfg.Combat.PickupRadius),
		log:        logger,
	}

	pc := cfg.Player
	s.Player = Player{
		Rect:      core.NewRect(core.ClampF(pc.SpawnX, 0, a.Width-pc.Width), a.GroundY-pc.Height, pc.Width, pc.Height),
		JumpPhase: s.jumpHeight,
		OnGround:  true,
		Health:    pc.MaxHealth,
		MaxHealth: pc.MaxHealth,
		Power:     NewPowerUp(cfg.PowerUp.Threshold, cfg.PowerUp.DurationTicks),
		Score:     opts.Carry.Score,
	}
	if opts.Carry.Health > 0 {
		s.Player.Health = min(opts.Carry.Health, pc.MaxHealth)
	}
	return s, nil
}

// jumpHeightFor derives the jump phase from the arena's own viewport, which
// may differ from the configured one.
func jumpHeightFor(cfg config.PlatformerConfig, a *level.Arena) int {
	cfg.Viewport.Height = a.Height
	cfg.Viewport.GroundHeight = a.Height - a.GroundY
	cfg.Viewport.TopBorder = a.TopBorder
	return cfg.JumpHeight()
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Tick returns the number of ticks simulated.
func (s *Session) Tick() int {
	return s.tick
}

// JumpHeight returns the jump phase counter used by this session.
func (s *Session) JumpHeight() int {
	return s.jumpHeight
}

// Quit ends a running session.
func (s *Session) Quit() {
	if s.state == StatePlaying {
		s.state = StateQuit
	}
}

// Step advances the session by one tick. Once the session has left
// StatePlaying, Step does nothing.
func (s *Session) Step(in core.InputFrame) StepResult {
	if s.state != StatePlaying {
		return StepResult{State: s.state, Tick: s.tick}
	}
	if in.Has(core.ActionQuit) {
		s.state = StateQuit
		return StepResult{State: s.state, Tick: s.tick}
	}
	s.tick++

	p := &s.Player
	prev := p.Rect

	s.applyInput(in)
	s.integrate()

	bounds := ArenaBounds(s.Arena)
	for i := range s.Arena.Enemies {
		Advance(&s.Arena.Enemies[i], bounds, s.rng)
		move(s.world.enemies[i], s.Arena.Enemies[i].Rect)
	}
	Advance(&s.Arena.Guardian, bounds, s.rng)
	move(s.world.guardian, s.Arena.Guardian.Rect)

	s.resolvePlatforms(prev)
	s.clampVertical()
	s.resolveObstacles(prev)

	hit, dead := s.checkDamage()
	if dead {
		s.state = StateDead
		return StepResult{State: s.state, Tick: s.tick}
	}
	s.collectPickups()
	s.collectCoins()
	goal := s.reachedGoal()

	// The grace window starts counting on the tick after the hit
	if p.InvincibleTicks > 0 && !hit {
		p.InvincibleTicks--
	}
	p.Power.Tick()

	if goal {
		if s.Level >= s.MaxLevels {
			s.state = StateVictory
		} else {
			s.state = StateLevelComplete
		}
	}
	return StepResult{State: s.state, Tick: s.tick}
}

// applyInput handles horizontal movement, the jump trigger and power activation.
func (s *Session) applyInput(in core.InputFrame) {
	p := &s.Player
	dx := 0.0
	if in.Has(core.ActionLeft) {
		dx -= s.cfg.Player.Speed
	}
	if in.Has(core.ActionRight) {
		dx += s.cfg.Player.Speed
	}
	p.X = core.ClampF(p.X+dx, 0, s.Arena.Width-p.W)

	if in.Has(core.ActionJump) && !p.Jumping && p.OnGround {
		p.Jumping = true
		p.JumpPhase = s.jumpHeight
	}
	if in.Has(core.ActionActivate) && p.Power.TryActivate() {
		s.log.Debug("power-up activated", "ticks", p.Power.TicksRemaining, "tick", s.tick)
	}
}

// integrate moves the player along the jump arc, or by gravity when not jumping.
func (s *Session) integrate() {
	p := &s.Player
	p.OnGround = false
	if !p.Jumping {
		p.Y += s.cfg.Physics.Gravity
		return
	}
	p.Y -= JumpDisplacement(p.JumpPhase)
	p.JumpPhase--
	if p.JumpPhase < -s.jumpHeight {
		p.Jumping = false
		p.JumpPhase = s.jumpHeight
	}
}
