package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotcraft/internal/config"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenRecords
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// records panel reachable from the menu. It is the top-level model for
// local play and for SSH sessions.
type SessionModel struct {
	opts     Options
	current  sessionScreen
	menu     MenuModel
	game     *GameModel
	records  RecordsModel
	quitting bool
}

// NewSessionModel creates a session. A non-nil start level skips the menu.
func NewSessionModel(opts Options, start *config.Level) (SessionModel, error) {
	m := SessionModel{
		opts: opts,
		menu: NewMenuModel(opts),
	}
	if start != nil {
		game, err := NewGameModel(opts, *start)
		if err != nil {
			return SessionModel{}, err
		}
		m.game = &game
		m.current = screenGame
	}
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.current == screenGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRecords() {
		m.records = NewRecordsModel(m.opts, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, false)
		m.current = screenRecords
		return m, m.records.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := NewGameModel(m.opts, *selected)
		if err != nil {
			m.opts.logger().Error("could not start level", "level", selected.Label(), "error", err)
			m.menu = NewMenuModel(m.opts)
			return m, nil
		}
		m.game = &game
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gameModel, ok := next.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRecords handles updates when the records panel is open.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if rm, ok := next.(RecordsModel); ok {
		m.records = rm
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.records.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// backToMenu rebuilds the menu so it shows fresh records.
func (m *SessionModel) backToMenu() {
	cursor := m.menu.cursor
	m.menu = NewMenuModel(m.opts)
	m.menu.cursor = min(cursor, max(len(m.menu.levels)-1, 0))
	m.current = screenMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenRecords:
		return m.records.View()
	default:
		return m.menu.View()
	}
}

// Screen reports which screen is active, for tests.
func (m SessionModel) Screen() string {
	switch m.current {
	case screenGame:
		return "game"
	case screenRecords:
		return "records"
	default:
		return "menu"
	}
}

// Run starts the Bubble Tea program for local play. A non-nil start level
// skips the level selector.
func Run(opts Options, start *config.Level) error {
	model, err := NewSessionModel(opts, start)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag events for sliding lines
	)

	_, err = p.Run()
	return err
}
