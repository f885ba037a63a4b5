package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dotcraft/internal/config"
	"github.com/vovakirdan/dotcraft/internal/games/dotcraft"
	"github.com/vovakirdan/dotcraft/internal/storage"
)

const historyLimit = 50 // recent solves shown in the history tab

// RecordsTab selects what the records panel lists.
type RecordsTab int

const (
	TabBest RecordsTab = iota
	TabHistory
)

// RecordsKeyMap defines the key bindings for the records panel.
type RecordsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "best/history"),
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

// RecordRow is one line of the best-times table.
type RecordRow struct {
	Level config.Level
	Entry dotcraft.RecordEntry
	Stats storage.LevelStats // zero when no history is available
}

// BuildRecordRows lists every configured level followed by any recorded
// configuration the level list no longer names.
func BuildRecordRows(cfg config.DotcraftConfig, records *dotcraft.RecordStore, stats []storage.LevelStats) []RecordRow {
	byKey := make(map[dotcraft.RecordKey]storage.LevelStats, len(stats))
	for _, st := range stats {
		byKey[dotcraft.RecordKey{Size: st.Size, Targets: st.Targets}] = st
	}

	seen := make(map[dotcraft.RecordKey]bool)
	var rows []RecordRow
	add := func(l config.Level, e dotcraft.RecordEntry) {
		k := dotcraft.RecordKey{Size: l.Size, Targets: l.Targets}
		if seen[k] {
			return
		}
		seen[k] = true
		rows = append(rows, RecordRow{Level: l, Entry: e, Stats: byKey[k]})
	}

	for _, l := range cfg.Levels {
		var e dotcraft.RecordEntry
		if records != nil {
			e = records.Query(l.Size, l.Targets)
		}
		add(l, e)
	}
	if records != nil {
		for _, r := range records.All() {
			add(config.Level{Size: r.Key.Size, Targets: r.Key.Targets}, r.Entry)
		}
	}
	return rows
}

// RecordsModel is the Bubble Tea model for the records panel.
type RecordsModel struct {
	opts       Options
	tab        RecordsTab
	rows       []RecordRow
	history    []storage.Completion
	table      table.Model
	help       help.Model
	keys       RecordsKeyMap
	width      int
	height     int
	standalone bool // quit the program on back instead of returning to a parent
	loadErr    error
	quitting   bool
	goingBack  bool
}

// NewRecordsModel creates a records panel. A standalone panel quits the
// program when closed.
func NewRecordsModel(opts Options, width, height int, standalone bool) RecordsModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := RecordsModel{
		opts:       opts,
		help:       h,
		keys:       DefaultRecordsKeyMap(),
		width:      width,
		height:     height,
		standalone: standalone,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads records and, when a store is attached, the completion history.
func (m *RecordsModel) load() {
	var stats []storage.LevelStats
	if m.opts.Store != nil {
		var err error
		if stats, err = m.opts.Store.LevelStatistics(); err != nil {
			m.loadErr = err
		}
		if m.history, err = m.opts.Store.RecentCompletions(historyLimit); err != nil {
			m.loadErr = err
		}
	}
	m.rows = BuildRecordRows(m.opts.Config, m.opts.Records, stats)
}

// createTable creates a table with columns for the current tab.
func (m *RecordsModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == TabBest {
		columns = []table.Column{
			{Title: "Level", Width: 14},
			{Title: "Solved", Width: 7},
			{Title: "Best", Width: 9},
			{Title: "Solves", Width: 7},
			{Title: "Avg time", Width: 9},
			{Title: "Avg moves", Width: 9},
		}
	} else {
		columns = []table.Column{
			{Title: "When", Width: 13},
			{Title: "Level", Width: 10},
			{Title: "Time", Width: 9},
			{Title: "Moves", Width: 6},
			{Title: "Player", Width: 14},
		}
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

// updateTableRows fills the table for the current tab.
func (m *RecordsModel) updateTableRows() {
	var rows []table.Row
	if m.tab == TabBest {
		for _, r := range m.rows {
			rows = append(rows, bestRow(r))
		}
	} else {
		for _, c := range m.history {
			player := c.Player
			if player == "" {
				player = "local"
			}
			rows = append(rows, table.Row{
				c.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%dx%d · %d", c.Size, c.Size, c.Targets),
				formatSeconds(c.Seconds),
				fmt.Sprintf("%d", c.Moves),
				player,
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func bestRow(r RecordRow) table.Row {
	solved, best := "-", "-"
	if r.Entry.Solved {
		solved = "yes"
	}
	if r.Entry.HasBest {
		best = formatSeconds(r.Entry.BestSeconds)
	}
	solves, avgTime, avgMoves := "-", "-", "-"
	if r.Stats.Solves > 0 {
		solves = fmt.Sprintf("%d", r.Stats.Solves)
		avgTime = formatSeconds(r.Stats.AvgSeconds)
		avgMoves = fmt.Sprintf("%.1f", r.Stats.AvgMoves)
	}
	return table.Row{r.Level.Label(), solved, best, solves, avgTime, avgMoves}
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records panel.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Switch):
			if m.tab == TabBest {
				m.tab = TabHistory
			} else {
				m.tab = TabBest
			}
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the records panel.
func (m RecordsModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("RECORDS"), m.width))
	b.WriteString("\n\n")

	best, hist := tabStyle.Render("Best times"), tabStyle.Render("History")
	if m.tab == TabBest {
		best = activeTabStyle.Render("Best times")
	} else {
		hist = activeTabStyle.Render("History")
	}
	b.WriteString(centerText(best+" "+hist, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))
	b.WriteString("\n")

	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		b.WriteString(centerText(errStyle.Render("history unavailable: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RecordsModel) renderTableContent() string {
	empty := (m.tab == TabBest && len(m.rows) == 0) || (m.tab == TabHistory && len(m.history) == 0)
	if !empty {
		return m.table.View()
	}

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if m.tab == TabHistory && m.opts.Store == nil {
		return emptyStyle.Render("History is not being recorded.")
	}
	return emptyStyle.Render("Nothing solved yet.\nSolve a board to set a record!")
}

// Tab returns the tab being shown.
func (m RecordsModel) Tab() RecordsTab {
	return m.tab
}

// IsGoingBack returns true if user wants to leave the panel.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records panel on its own.
func RunRecords(opts Options) error {
	model := NewRecordsModel(opts, opts.Runtime.ScreenW, opts.Runtime.ScreenH, true)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
