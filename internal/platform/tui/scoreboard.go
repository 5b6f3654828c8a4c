package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/pyjump/internal/storage"
)

const maxRuns = 50

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		NextMode: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modeRecord is the campaign summary of one mode.
type modeRecord struct {
	MenuItem
	runs     int
	best     int
	furthest int // Deepest level any run ended on
}

// ScoreboardModel shows how far each mode's campaign has got and the best
// runs of the selected mode.
type ScoreboardModel struct {
	store     *storage.Store
	modes     []modeRecord
	cursor    int
	runs      []storage.ScoreEntry
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	err       error
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over the given modes. A nil store
// shows the unlocked levels only.
func NewScoreboardModel(store *storage.Store, modes []MenuItem, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  make([]modeRecord, len(modes)),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	for i, item := range modes {
		m.modes[i] = modeRecord{MenuItem: item}
	}
	m.loadRecords()
	m.table = m.newRunsTable()
	m.loadRuns()
	return m
}

func (m *ScoreboardModel) loadRecords() {
	if m.store == nil {
		return
	}
	stats, err := m.store.GetAllGamesStats()
	if err != nil {
		m.err = err
		return
	}
	for i := range m.modes {
		if s, ok := stats[m.modes[i].GameID]; ok {
			m.modes[i].runs = s.GamesCount
			m.modes[i].best = s.HighScore
			m.modes[i].furthest = s.BestLevel
		}
	}
}

func (m *ScoreboardModel) newRunsTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Reached", Width: 9},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		// Title, summary table and help take the rest
		table.WithHeight(max(m.height-len(m.modes)-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadRuns fills the runs table from the selected mode's top scores.
func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.modes) > 0 {
		runs, err := m.store.TopScores(m.modes[m.cursor].GameID, maxRuns)
		if err != nil {
			m.err = err
		}
		m.runs = runs
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			m.reached(r.Level),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// reached formats a level against the selected mode's campaign length.
func (m ScoreboardModel) reached(lvl int) string {
	if len(m.modes) == 0 || m.modes[m.cursor].MaxLevels == 0 {
		return fmt.Sprintf("%d", lvl)
	}
	return fmt.Sprintf("%d/%d", lvl, m.modes[m.cursor].MaxLevels)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.NextMode):
			m.selectMode(m.cursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.selectMode(m.cursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newRunsTable()
		m.loadRuns()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectMode moves the cursor, wrapping at both ends.
func (m *ScoreboardModel) selectMode(i int) {
	n := len(m.modes)
	if n == 0 {
		return
	}
	m.cursor = (i%n + n) % n
	m.loadRuns()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString(title.Render(centerText("C A M P A I G N S", m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.summaryView())
	b.WriteString("\n\n")

	if len(m.modes) > 0 {
		b.WriteString(title.Render(fmt.Sprintf("Best runs - %s", m.modes[m.cursor].Title)))
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(dim.Render(fmt.Sprintf("Scores unavailable: %v", m.err)))
	case len(m.runs) == 0:
		b.WriteString(dim.Italic(true).Render("No runs recorded yet."))
	default:
		b.WriteString(m.table.View())
	}

	b.WriteString("\n\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// summaryView renders one row per mode: unlocked and furthest level against
// the campaign length, run count and best score.
func (m ScoreboardModel) summaryView() string {
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Mode", "Unlocked", "Furthest", "Runs", "Best").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == m.cursor {
				return cell.Inherit(selected)
			}
			return cell
		})

	for _, r := range m.modes {
		unlocked, furthest := "-", "-"
		if r.MaxLevels > 0 {
			unlocked = fmt.Sprintf("%d/%d", r.Unlocked, r.MaxLevels)
		}
		if r.runs > 0 {
			furthest = fmt.Sprintf("%d", r.furthest)
			if r.MaxLevels > 0 {
				furthest += fmt.Sprintf("/%d", r.MaxLevels)
			}
		}
		t.Row(r.Title, unlocked, furthest, fmt.Sprintf("%d", r.runs), fmt.Sprintf("%d", r.best))
	}
	return t.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
