package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// levelsPerRow is the width of the level grid.
const levelsPerRow = 10

// LevelSelectKeyMap defines the key bindings for the level grid.
type LevelSelectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelSelectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LevelSelectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultLevelSelectKeyMap returns default key bindings.
func DefaultLevelSelectKeyMap() LevelSelectKeyMap {
	return LevelSelectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "row up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "row down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	levelStyle    = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	lockedStyle   = levelStyle.Foreground(lipgloss.Color("240"))
	selectedStyle = levelStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// LevelSelectModel is the level grid of one game mode. Levels above the
// watermark are locked.
type LevelSelectModel struct {
	title     string
	maxLevels int
	unlocked  int
	cursor    int // 0-based level index
	keys      LevelSelectKeyMap
	help      help.Model
	width     int
	height    int
	selected  int // Chosen level, 0 while choosing
	back      bool
	quitting  bool
}

// NewLevelSelectModel creates a grid with the cursor on the highest unlocked level.
func NewLevelSelectModel(title string, maxLevels, unlocked, width, height int) LevelSelectModel {
	maxLevels = max(maxLevels, 1)
	unlocked = min(max(unlocked, 1), maxLevels)

	h := help.New()
	h.Width = width

	return LevelSelectModel{
		title:     title,
		maxLevels: maxLevels,
		unlocked:  unlocked,
		cursor:    unlocked - 1,
		keys:      DefaultLevelSelectKeyMap(),
		help:      h,
		width:     width,
		height:    height,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
		case key.Matches(msg, m.keys.Left):
			m.move(-1)
		case key.Matches(msg, m.keys.Right):
			m.move(1)
		case key.Matches(msg, m.keys.Up):
			m.move(-levelsPerRow)
		case key.Matches(msg, m.keys.Down):
			m.move(levelsPerRow)
		case key.Matches(msg, m.keys.Select):
			if m.cursor < m.unlocked {
				m.selected = m.cursor + 1
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// move shifts the cursor, staying inside the grid.
func (m *LevelSelectModel) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.maxLevels {
		return
	}
	m.cursor = next
}

// View renders the level grid.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.title+" - SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for row := 0; row*levelsPerRow < m.maxLevels; row++ {
		cells := make([]string, 0, levelsPerRow)
		for i := row * levelsPerRow; i < min((row+1)*levelsPerRow, m.maxLevels); i++ {
			cells = append(cells, m.cell(i))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("Unlocked %d/%d", m.unlocked, m.maxLevels)
	if m.cursor >= m.unlocked {
		status = fmt.Sprintf("Level %d is locked. Clear level %d first.", m.cursor+1, m.unlocked)
	}
	b.WriteString(centerText(status, m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.View(m.keys)))

	return b.String()
}

func (m LevelSelectModel) cell(i int) string {
	label := fmt.Sprintf("%d", i+1)
	switch {
	case i == m.cursor:
		return selectedStyle.Render(label)
	case i >= m.unlocked:
		return lockedStyle.Render("··")
	default:
		return levelStyle.Render(label)
	}
}

// Selected returns the chosen level, or 0 while choosing.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
