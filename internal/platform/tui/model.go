package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/progress"
	"github.com/vovakirdan/pyjump/internal/registry"
	"github.com/vovakirdan/pyjump/internal/storage"
)

// Env carries the services shared by every screen of a session.
type Env struct {
	Store  *storage.Store // Score history; nil disables score saving
	Config config.PlatformerConfig
	Logger *log.Logger
	// Progress returns the watermark store for a game. nil uses the Store's
	// progress table, or keeps nothing without a Store.
	Progress func(gameID string) progress.Store
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) progressFor(gameID string) progress.Store {
	if e.Progress != nil {
		return e.Progress(gameID)
	}
	if e.Store != nil {
		return progress.NewBestEffort(e.Store.Progress(gameID), e.logger())
	}
	return nil
}

// Create instantiates a game and hands it the session services.
func (e Env) Create(gameID string) (registry.Game, error) {
	g, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if h, ok := g.(registry.Hosted); ok {
		h.Attach(registry.Host{
			Config:   e.Config,
			Progress: e.progressFor(gameID),
			Logger:   e.logger().With("game", gameID),
		})
	}
	return g, nil
}

// GameModel is the Bubble Tea model for one game run.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	env        Env
	config     core.RuntimeConfig
	latch      *InputLatch
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	quitOnMenu bool // Standalone runs end the program on back-to-menu
	scoreSaved bool // Whether the score has been saved for the current run
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, env Env, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		env:       env,
		config:    cfg,
		latch:     NewInputLatch(),
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The arena is laid out in pixels; only the screen buffer follows the terminal.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	// Quit reaches the game on the next tick so the run is recorded.
	m.keyMapper.MapKeyToLatch(msg, m.latch)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.latch.Frame())
	m.gameState = result.State

	// Record a run once it ends, however it ends.
	ended := m.gameState.GameOver || m.gameState.Menu || m.gameState.Quit
	if ended && !m.scoreSaved {
		m.saveScore()
	}
	if !ended {
		m.scoreSaved = false
	}

	switch {
	case m.gameState.Quit:
		m.quitting = true
		return m, tea.Quit
	case m.gameState.Menu:
		m.backToMenu = true
		m.latch.Release()
		if m.quitOnMenu {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveScore() {
	m.scoreSaved = true
	if m.env.Store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.env.Store.SaveScore(m.game.ID(), m.gameState.Level, m.gameState.Score); err != nil {
		m.env.logger().Warn("score not saved", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.logger().Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.logger().Warn("screenshot skipped", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to level select.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in its own Bubble Tea program.
// It returns true if the player asked for the level select rather than quitting.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, env, cfg)
	model.quitOnMenu = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}
