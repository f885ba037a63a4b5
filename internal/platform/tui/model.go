package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dotcraft/internal/config"
	"github.com/vovakirdan/dotcraft/internal/core"
	"github.com/vovakirdan/dotcraft/internal/games/dotcraft"
	"github.com/vovakirdan/dotcraft/internal/storage"
)

// Screen layout constants
const (
	boardTop     = 4 // first row of board cells; the frame sits one row above
	flashTimeout = 3 * time.Second
)

// Options carries what every dotcraft screen needs.
type Options struct {
	Config  config.DotcraftConfig
	Runtime core.RuntimeConfig
	Records *dotcraft.RecordStore // shared by every session of the process
	Store   *storage.Store        // completion history; nil disables it
	Logger  *log.Logger           // nil discards
	Player  string                // SSH user, empty for local play
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// newSession builds an engine session for level from the configuration.
func newSession(opts Options, level config.Level) (*dotcraft.Session, error) {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen := dotcraft.NewGenerator(seed)
	if n := opts.Config.Generation.MaxAttempts; n > 0 {
		gen.MaxAttempts = n
	}
	gen.AllowOverlap = opts.Config.Generation.AllowOverlap

	g := opts.Config.Gesture
	layout := dotcraft.BoardLayout(opts.Runtime.ScreenW, level.Size, boardTop, g.CellWidth, g.CellHeight)

	sessOpts := []dotcraft.Option{
		dotcraft.WithGenerator(gen),
		dotcraft.WithRetries(opts.Config.Generation.Retries),
		dotcraft.WithLayout(layout, g.Slop),
	}
	if opts.Records != nil {
		sessOpts = append(sessOpts, dotcraft.WithRecords(opts.Records))
	}
	return dotcraft.NewSession(level.Size, level.Targets, sessOpts...)
}

// GameModel is the Bubble Tea model for one board: keyboard and mouse input,
// the HUD and an optional records panel.
type GameModel struct {
	opts       Options
	session    *dotcraft.Session
	screen     *core.Screen
	keyMapper  *KeyMapper
	tickID     int
	cursor     int
	flash      string
	flashColor core.Color
	flashUntil time.Time

	records     RecordsModel
	showRecords bool

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game on level.
func NewGameModel(opts Options, level config.Level) (GameModel, error) {
	session, err := newSession(opts, level)
	if err != nil {
		return GameModel{}, err
	}

	return GameModel{
		opts:      opts,
		session:   session,
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		tickID:    nextTickID(),
	}, nil
}

// Init starts the timer refresh loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m, tickCmd(m.opts.Runtime.TickRate, m.tickID)
	}

	if m.showRecords {
		return m.updateRecords(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	size := m.session.Size()
	row, col := m.cursor/size, m.cursor%size

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		return m, nil

	case core.ActionCursorUp:
		row = core.Clamp(row-1, 0, size-1)
	case core.ActionCursorDown:
		row = core.Clamp(row+1, 0, size-1)
	case core.ActionCursorLeft:
		col = core.Clamp(col-1, 0, size-1)
	case core.ActionCursorRight:
		col = core.Clamp(col+1, 0, size-1)

	case core.ActionRotateLeft:
		m.apply(dotcraft.RotateRow(row, dotcraft.Backward))
	case core.ActionRotateRight:
		m.apply(dotcraft.RotateRow(row, dotcraft.Forward))
	case core.ActionRotateUp:
		m.apply(dotcraft.RotateColumn(col, dotcraft.Backward))
	case core.ActionRotateDown:
		m.apply(dotcraft.RotateColumn(col, dotcraft.Forward))

	case core.ActionRestart:
		if err := m.session.Restart(); err != nil {
			m.fail("could not generate a new board", err)
		} else {
			m.setFlash("New board", core.ColorCyan)
		}

	case core.ActionPrevLevel:
		m.changeLevel(-1)
		return m, nil
	case core.ActionNextLevel:
		m.changeLevel(1)
		return m, nil

	case core.ActionRecords:
		m.records = NewRecordsModel(m.opts, m.screen.Width(), m.screen.Height(), false)
		m.showRecords = true
		return m, nil
	}

	m.cursor = row*size + col
	return m, nil
}

// handleMouse turns left-button drags into gesture events. Each terminal
// cell is reported at its center so sub-cell drags stay symmetric.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var kind dotcraft.GestureKind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		kind = dotcraft.TouchDown
	case tea.MouseActionMotion:
		kind = dotcraft.TouchMove
	case tea.MouseActionRelease:
		kind = dotcraft.TouchUp
	default:
		return m, nil
	}

	ev := dotcraft.GestureEvent{Kind: kind, X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}
	if kind == dotcraft.TouchDown {
		if cell, ok := m.session.Layout().CellAt(ev.X, ev.Y); ok {
			m.cursor = cell
		}
	}

	out, err := m.session.ApplyGesture(ev)
	m.handleOutcome(out, err)
	return m, nil
}

// handleResize re-centers the board; a drag in progress is dropped.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.session.SetLayout(m.layout())

	if m.showRecords {
		return m.updateRecords(msg)
	}
	return m, nil
}

func (m GameModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if rm, ok := next.(RecordsModel); ok {
		m.records = rm
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.records.IsGoingBack() {
		m.showRecords = false
		return m, nil
	}
	return m, cmd
}

func (m *GameModel) apply(mv dotcraft.Move) {
	out, err := m.session.ApplyMove(mv)
	m.handleOutcome(out, err)
}

func (m *GameModel) handleOutcome(out dotcraft.Outcome, err error) {
	logger := m.opts.logger()

	ev := out.Solved
	if ev == nil {
		switch {
		case errors.Is(err, dotcraft.ErrBoardSolved):
			m.setFlash("Solved · press r for a new board", core.ColorYellow)
		case err != nil:
			m.fail("move rejected", err)
		}
		return
	}

	text := fmt.Sprintf("Solved in %s · %d moves", formatSeconds(ev.ElapsedSeconds), ev.Moves)
	if ev.NewBest {
		text += " · new best!"
	}
	switch {
	case err != nil && m.session.Board().Solved():
		logger.Error("could not start the next board", "error", err)
		text += " · press r for a new board"
	case err != nil:
		logger.Error("solve not fully recorded", "error", err)
		text += " · not saved"
	}
	m.setFlash(text, core.ColorBrightGreen)

	logger.Info("board solved",
		"size", ev.Size,
		"targets", ev.Targets,
		"seconds", ev.ElapsedSeconds,
		"moves", ev.Moves,
		"new_best", ev.NewBest,
	)

	if m.opts.Store == nil {
		return
	}
	_, saveErr := m.opts.Store.SaveCompletion(storage.Completion{
		Size:    ev.Size,
		Targets: ev.Targets,
		Seconds: ev.ElapsedSeconds,
		Moves:   ev.Moves,
		Player:  m.opts.Player,
	})
	if saveErr != nil {
		logger.Warn("could not save completion", "error", saveErr)
	}
}

func (m *GameModel) changeLevel(delta int) {
	next := m.opts.Config.Step(m.session.Size(), m.session.Targets(), delta)
	if err := m.session.Configure(next.Size, next.Targets); err != nil {
		m.fail("could not switch level", err)
		return
	}
	m.session.SetLayout(m.layout())
	m.cursor = 0
	m.setFlash(next.Label(), core.ColorCyan)
}

func (m *GameModel) fail(what string, err error) {
	m.opts.logger().Error(what, "error", err)
	m.setFlash("Error: "+what, core.ColorRed)
}

func (m *GameModel) setFlash(text string, c core.Color) {
	m.flash = text
	m.flashColor = c
	m.flashUntil = time.Now().Add(flashTimeout)
}

func (m GameModel) layout() dotcraft.Layout {
	g := m.opts.Config.Gesture
	return dotcraft.BoardLayout(m.screen.Width(), m.session.Size(), boardTop, g.CellWidth, g.CellHeight)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showRecords {
		return m.records.View()
	}

	m.screen.Clear()
	l := m.session.Layout()
	area := dotcraft.BoardRect(l)
	if area.X < 1 || area.Right()+1 > m.screen.Width() || area.Bottom()+4 > m.screen.Height() {
		m.screen.DrawTextCentered(m.screen.Height()/2, "Terminal too small - resize or press [ for a smaller level", core.ColorYellow)
		return RenderScreen(m.screen)
	}

	m.drawHUD()
	dotcraft.DrawBoard(m.screen, dotcraft.View{
		Board:  m.session.Board(),
		Layout: l,
		Drag:   m.session.Drag(),
		Cursor: m.cursor,
	})

	if m.flash != "" && time.Now().Before(m.flashUntil) {
		m.screen.DrawTextCentered(area.Bottom()+2, m.flash, m.flashColor)
	}
	m.screen.DrawTextCentered(m.screen.Height()-1,
		"arrows move · shift+arrows/HJKL rotate · drag · r new · [ ] level · tab records · b menu · q quit",
		core.ColorGray)

	return RenderScreen(m.screen)
}

func (m GameModel) drawHUD() {
	m.screen.DrawTextCentered(1, "D O T C R A F T", core.ColorBrightYellow)

	size, targets := m.session.Size(), m.session.Targets()
	status := fmt.Sprintf("%dx%d · %d targets   %s   moves %d",
		size, size, targets, formatElapsed(m.session.Elapsed()), m.session.Moves())
	if rec := m.session.Record(size, targets); rec.HasBest {
		status += "   best " + formatSeconds(rec.BestSeconds)
	}
	m.screen.DrawTextCentered(2, status, core.ColorWhite)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Session exposes the engine session, mainly for tests.
func (m GameModel) Session() *dotcraft.Session {
	return m.session
}
