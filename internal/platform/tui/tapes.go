package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyhop/internal/storage"
)

const maxTapes = 100

// TapeStore is the part of storage the tape browser needs.
type TapeStore interface {
	ListTapes(limit int) ([]storage.TapeInfo, error)
	DeleteTape(id int64) error
}

// TapeListKeyMap defines the key bindings for the tape browser.
type TapeListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TapeListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TapeListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Delete, k.Quit},
	}
}

// DefaultTapeListKeyMap returns default key bindings.
func DefaultTapeListKeyMap() TapeListKeyMap {
	return TapeListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TapeListModel is a Bubble Tea model listing recorded tapes.
type TapeListModel struct {
	store    TapeStore
	tapes    []storage.TapeInfo
	table    table.Model
	help     help.Model
	keys     TapeListKeyMap
	width    int
	height   int
	selected int64
	status   string
	quitting bool
}

// NewTapeListModel creates a tape browser and loads the newest tapes.
func NewTapeListModel(store TapeStore, width, height int) TapeListModel {
	m := TapeListModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultTapeListKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.loadTapes()
	return m
}

func (m *TapeListModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Seed", Width: 20},
		{Title: "Runs", Width: 5},
		{Title: "Best", Width: 5},
		{Title: "Length", Width: 8},
		{Title: "Recorded", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-7)),
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

func (m *TapeListModel) loadTapes() {
	tapes, err := m.store.ListTapes(maxTapes)
	if err != nil {
		m.status = "load failed: " + err.Error()
		tapes = nil
	}
	m.tapes = tapes
	m.updateTableRows()
}

func (m *TapeListModel) updateTableRows() {
	rows := make([]table.Row, len(m.tapes))
	for i, t := range m.tapes {
		rows[i] = table.Row{
			strconv.FormatInt(t.ID, 10),
			strconv.FormatInt(t.Seed, 10),
			strconv.Itoa(t.Runs),
			strconv.Itoa(t.Best),
			t.Duration.Round(100 * time.Millisecond).String(),
			t.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

func (m TapeListModel) current() (storage.TapeInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.tapes) {
		return storage.TapeInfo{}, false
	}
	return m.tapes[i], true
}

// Init implements tea.Model.
func (m TapeListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the tape browser.
func (m TapeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if t, ok := m.current(); ok {
				m.selected = t.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			t, ok := m.current()
			if !ok {
				return m, nil
			}
			if err := m.store.DeleteTape(t.ID); err != nil {
				m.status = "delete failed: " + err.Error()
				return m, nil
			}
			m.status = fmt.Sprintf("deleted tape %d", t.ID)
			m.loadTapes()
			if m.table.Cursor() >= len(m.tapes) {
				m.table.GotoBottom()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the tape browser.
func (m TapeListModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("RECORDED TAPES"))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.tapes) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No tapes recorded yet.\nPlay with --record to save one.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the ID of the tape chosen with enter, or 0.
func (m TapeListModel) Selected() int64 {
	return m.selected
}

// Tapes returns the tapes currently listed.
func (m TapeListModel) Tapes() []storage.TapeInfo {
	return m.tapes
}

// RunTapeList runs the tape browser and returns the selected tape ID, or 0
// when the user quit without choosing.
func RunTapeList(store TapeStore, width, height int) (int64, error) {
	p := tea.NewProgram(
		NewTapeListModel(store, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(TapeListModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
