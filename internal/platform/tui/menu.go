package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dotcraft/internal/config"
)

// MenuModel is the Bubble Tea model for the level selector.
type MenuModel struct {
	opts        Options
	levels      []config.Level
	cursor      int
	width       int
	height      int
	keyMapper   *KeyMapper
	quitting    bool
	selected    *config.Level // Set when user selects a level
	openRecords bool          // True if user pressed Tab for records
}

// NewMenuModel creates a level selector positioned on the starting level.
func NewMenuModel(opts Options) MenuModel {
	cursor := opts.Config.LevelIndex(opts.Config.Board.Size, opts.Config.Board.Targets)
	return MenuModel{
		opts:      opts,
		levels:    opts.Config.Levels,
		cursor:    max(cursor, 0),
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.levels) > 0 {
			selected := m.levels[m.cursor]
			m.selected = &selected
		}

	case MenuActionRecords:
		m.openRecords = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	solvedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("D O T C R A F T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Slide the dots onto the rings", m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := dimStyle.Render("unsolved")
		if m.opts.Records != nil {
			if rec := m.opts.Records.Query(l.Size, l.Targets); rec.HasBest {
				best = solvedStyle.Render("best " + formatSeconds(rec.BestSeconds))
			} else if rec.Solved {
				best = solvedStyle.Render("solved")
			}
		}

		line := fmt.Sprintf("%s%-14s %s", cursor, l.Label(), best)
		if i == m.cursor {
			line = cursorStyle.Render(fmt.Sprintf("%s%-14s ", cursor, l.Label())) + best
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *config.Level {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records panel.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}
