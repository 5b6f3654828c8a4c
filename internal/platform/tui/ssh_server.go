package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/registry"
	"github.com/vovakirdan/pyjump/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pyjump/host_key.
	HostKeyPath string

	// DBPath is the path to the scores and progress database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for PyJump.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	env    Env
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. Every session shares the game
// configuration; progress is kept per game in the server's database.
func NewSSHServer(cfg SSHServerConfig, game config.PlatformerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pyjump-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, scores and progress disabled", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		env:    Env{Store: store, Config: game, Logger: logger},
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, config.AppDir, "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
		Level:    1,
	}

	env := s.env
	env.Logger = s.logger.With("user", sshSession.User())
	return NewSessionModel(env, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.env.Store != nil {
		s.env.Store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type phase int

const (
	phaseMenu phase = iota
	phaseLevels
	phaseGame
	phaseScores
)

// SessionModel manages a full session: mode menu -> level select -> game,
// with the scoreboard one key away. It is the top-level model for both SSH
// sessions and local play.
type SessionModel struct {
	env      Env
	config   core.RuntimeConfig
	phase    phase
	gameID   string
	title    string
	menu     MenuModel
	levels   LevelSelectModel
	scores   ScoreboardModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the mode menu.
func NewSessionModel(env Env, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(env, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.phase {
	case phaseLevels:
		return m.updateLevels(msg)
	case phaseGame:
		return m.updateGame(msg)
	case phaseScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.env.Store, m.menu.Items(), m.config.ScreenW, m.config.ScreenH)
		m.phase = phaseScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		item := m.menu.Selected()
		m.gameID, m.title = item.GameID, item.Title
		if item.MaxLevels == 0 {
			return m.startGame(1)
		}
		m.levels = NewLevelSelectModel(item.Title, item.MaxLevels, item.Unlocked, m.config.ScreenW, m.config.ScreenH)
		m.phase = phaseLevels
		return m, m.levels.Init()
	}

	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLevels, cmd := m.levels.Update(msg)
	if levels, ok := newLevels.(LevelSelectModel); ok {
		m.levels = levels
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.toMenu()
	case m.levels.Selected() > 0:
		return m.startGame(m.levels.Selected())
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		// Back lands on the level grid of the same mode with fresh progress.
		m.game = nil
		g, err := m.env.Create(m.gameID)
		if err != nil {
			return m.toMenu()
		}
		c, ok := g.(registry.Campaign)
		if !ok {
			return m.toMenu()
		}
		m.levels = NewLevelSelectModel(m.title, c.MaxLevels(), c.Watermark(), m.config.ScreenW, m.config.ScreenH)
		m.phase = phaseLevels
		return m, m.levels.Init()
	}

	return m, cmd
}

func (m SessionModel) startGame(lvl int) (tea.Model, tea.Cmd) {
	game, err := m.env.Create(m.gameID)
	if err != nil {
		// Shouldn't happen since the menu only shows registered games
		m.env.logger().Error("cannot create game", "game", m.gameID, "err", err)
		return m.toMenu()
	}

	cfg := m.config
	cfg.Level = lvl
	cfg.Seed = time.Now().UnixNano()
	gameModel := NewGameModel(game, m.env, cfg)
	m.game = &gameModel
	m.phase = phaseGame
	m.env.logger().Info("run started", "game", m.gameID, "lvl", lvl)
	return m, m.game.Init()
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.env, m.config)
	m.phase = phaseMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseLevels:
		return m.levels.View()
	case phaseGame:
		return m.game.View()
	case phaseScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the full menu-driven session in the local terminal.
func RunSession(env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(env, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
