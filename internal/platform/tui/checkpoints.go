package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/storage"
)

// Checkpoint browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show sim list sidebar
	sidebarWidth       = 20  // Width of sim list sidebar
	maxCheckpoints     = 200 // Max checkpoints to load
)

// CheckpointStore is the part of the store the browser uses.
type CheckpointStore interface {
	ListCheckpoints(simID string, limit int) ([]storage.Checkpoint, error)
	DeleteCheckpoint(id int64) error
}

// CheckpointKeyMap defines the key bindings for the checkpoint browser.
type CheckpointKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Resume  key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
	NextSim key.Binding
	PrevSim key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CheckpointKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Resume, k.Delete, k.NextSim, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k CheckpointKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSim, k.PrevSim},
		{k.Resume, k.Delete, k.Back, k.Quit},
	}
}

// DefaultCheckpointKeyMap returns default key bindings.
func DefaultCheckpointKeyMap() CheckpointKeyMap {
	return CheckpointKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev sim"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next sim"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		NextSim: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next sim"),
		),
		PrevSim: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev sim"),
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

// CheckpointChoice identifies the checkpoint picked for resuming.
type CheckpointChoice struct {
	ID    int64
	SimID string
	Step  uint64
}

// CheckpointsModel is the Bubble Tea model for the checkpoint browser.
type CheckpointsModel struct {
	sims        []registry.SimInfo
	simCursor   int
	store       CheckpointStore
	checkpoints []storage.Checkpoint
	loadErr     error
	table       table.Model
	help        help.Model
	keys        CheckpointKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	chosen      *CheckpointChoice
	showSidebar bool
}

// NewCheckpointsModel creates a browser starting at simID (or the first
// registered sim when simID is empty or unknown).
func NewCheckpointsModel(store CheckpointStore, simID string, width, height int) CheckpointsModel {
	h := help.New()
	h.ShowAll = false

	m := CheckpointsModel{
		sims:        registry.List(),
		store:       store,
		keys:        DefaultCheckpointKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, s := range m.sims {
		if s.ID == simID {
			m.simCursor = i
		}
	}

	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *CheckpointsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Tick", Width: 10},
		{Title: "Label", Width: 8},
		{Title: "Size", Width: 8},
		{Title: "Saved", Width: 14},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 60 {
		columns[1].Width = 12
		columns[4].Width = min(tableWidth-44, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

func (m *CheckpointsModel) currentSim() string {
	if len(m.sims) == 0 {
		return ""
	}
	return m.sims[m.simCursor].ID
}

// reload loads the checkpoints of the current sim.
func (m *CheckpointsModel) reload() {
	m.checkpoints, m.loadErr = nil, nil
	if m.store != nil && len(m.sims) > 0 {
		m.checkpoints, m.loadErr = m.store.ListCheckpoints(m.currentSim(), maxCheckpoints)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current checkpoints.
func (m *CheckpointsModel) updateTableRows() {
	rows := make([]table.Row, len(m.checkpoints))
	for i, c := range m.checkpoints {
		rows[i] = table.Row{
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.Step),
			c.Label,
			formatSize(c.Size),
			c.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%dB", n)
}

// selected returns the checkpoint under the table cursor.
func (m *CheckpointsModel) selected() (storage.Checkpoint, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.checkpoints) {
		return storage.Checkpoint{}, false
	}
	return m.checkpoints[i], true
}

// Init initializes the browser model.
func (m CheckpointsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m CheckpointsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Resume):
			if c, ok := m.selected(); ok {
				m.chosen = &CheckpointChoice{ID: c.ID, SimID: c.SimID, Step: c.Step}
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if c, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteCheckpoint(c.ID); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextSim), key.Matches(msg, m.keys.Right):
			if len(m.sims) > 0 {
				m.simCursor = (m.simCursor + 1) % len(m.sims)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSim), key.Matches(msg, m.keys.Left):
			if len(m.sims) > 0 {
				m.simCursor--
				if m.simCursor < 0 {
					m.simCursor = len(m.sims) - 1
				}
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m CheckpointsModel) View() string {
	if m.quitting || m.goingBack || m.chosen != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "CHECKPOINTS"
	if len(m.sims) > 0 {
		title = fmt.Sprintf("CHECKPOINTS - %s", m.sims[m.simCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a sidebar for sim selection.
func (m CheckpointsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Simulations\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.sims {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.simCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := s.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the browser with sim tabs above the table.
func (m CheckpointsModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.sims))
	for i, s := range m.sims {
		if i == m.simCursor {
			tabs[i] = activeTabStyle.Render(s.ID)
		} else {
			tabs[i] = tabStyle.Render(" " + s.ID + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or a placeholder message.
func (m CheckpointsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load checkpoints:\n" + m.loadErr.Error())
	}
	if len(m.checkpoints) == 0 {
		return emptyStyle.Render("No checkpoints yet.\nRun a simulation and press ctrl+s to save one.")
	}

	return m.table.View()
}

// Chosen returns the checkpoint picked for resuming, or nil.
func (m CheckpointsModel) Chosen() *CheckpointChoice {
	return m.chosen
}

// IsGoingBack returns true if user wants to go back to menu.
func (m CheckpointsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m CheckpointsModel) IsQuitting() bool {
	return m.quitting
}

// RunCheckpoints runs the checkpoint browser. It returns the checkpoint to
// resume, if any, and whether the user went back rather than quitting.
func RunCheckpoints(store CheckpointStore, simID string, width, height int) (*CheckpointChoice, bool, error) {
	model := NewCheckpointsModel(store, simID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(CheckpointsModel)
	if !ok {
		return nil, false, nil
	}

	return m.Chosen(), m.IsGoingBack(), nil
}
