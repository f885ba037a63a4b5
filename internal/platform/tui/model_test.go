package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotcraft/internal/config"
	"github.com/vovakirdan/dotcraft/internal/core"
	"github.com/vovakirdan/dotcraft/internal/games/dotcraft"
	"github.com/vovakirdan/dotcraft/internal/storage"
)

func testOptions() Options {
	return Options{
		Config: config.DefaultDotcraftConfig(),
		Runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: 10,
			Seed:     1,
		},
		Records: dotcraft.NewRecordStore(),
	}
}

func newTestGame(t *testing.T, opts Options, size, targets int) GameModel {
	t.Helper()
	m, err := NewGameModel(opts, config.Level{Size: size, Targets: targets})
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

// expectMove checks that the board changed by mv, or that mv solved it.
func expectMove(t *testing.T, m GameModel, before *dotcraft.Board, mv dotcraft.Move) {
	t.Helper()
	if strings.HasPrefix(m.flash, "Solved") {
		return
	}
	want, err := dotcraft.Apply(before, mv)
	if err != nil {
		t.Fatalf("Apply(%v) failed: %v", mv, err)
	}
	if got := m.Session().Board(); got.String() != want.String() {
		t.Errorf("board after %v:\n%s\nwant:\n%s", mv, got, want)
	}
}

func TestGameKeyboardRotation(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)

	// Cursor to row 1, column 2.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight}) // clamped
	if m.cursor != 5 {
		t.Fatalf("cursor = %d, want 5", m.cursor)
	}

	tests := []struct {
		key tea.KeyMsg
		mv  dotcraft.Move
	}{
		{tea.KeyMsg{Type: tea.KeyShiftRight}, dotcraft.RotateRow(1, dotcraft.Forward)},
		{runeKey("H"), dotcraft.RotateRow(1, dotcraft.Backward)},
		{tea.KeyMsg{Type: tea.KeyShiftUp}, dotcraft.RotateColumn(2, dotcraft.Backward)},
		{runeKey("J"), dotcraft.RotateColumn(2, dotcraft.Forward)},
	}
	for _, tt := range tests {
		m.flash = ""
		before := m.Session().Board()
		m = update(t, m, tt.key)
		expectMove(t, m, before, tt.mv)
	}
}

func TestGameMouseDrag(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)
	l := m.Session().Layout()

	// Press in the middle of cell 0, drag just over half a cell right.
	x := int(l.OriginX) + 2
	y := int(l.OriginY) + 1
	before := m.Session().Board()

	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + 4, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if v := m.Session().Drag(); v.Phase != dotcraft.PhaseHorizontal || v.Offset != 4 {
		t.Fatalf("drag view = %+v, want horizontal offset 4", v)
	}
	m = update(t, m, tea.MouseMsg{X: x + 4, Y: y, Action: tea.MouseActionRelease})

	expectMove(t, m, before, dotcraft.RotateRow(0, dotcraft.Forward))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want the pressed cell 0", m.cursor)
	}
}

func TestGameShortDragCancels(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)
	l := m.Session().Layout()
	x, y := int(l.OriginX)+2, int(l.OriginY)+4 // cell 3
	before := m.Session().Board()

	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + 2, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + 2, Y: y, Action: tea.MouseActionRelease})

	if m.Session().Board().String() != before.String() || m.Session().Moves() != 0 {
		t.Error("a drag of a third of a cell changed the board")
	}
}

func TestGameIgnoresOtherButtons(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)
	l := m.Session().Layout()

	m = update(t, m, tea.MouseMsg{X: int(l.OriginX) + 2, Y: int(l.OriginY) + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.Session().Drag().Phase != dotcraft.PhaseIdle {
		t.Error("right button started a drag")
	}
}

func TestGameLevelCycling(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)

	m = update(t, m, runeKey("]"))
	if s := m.Session(); s.Size() != 3 || s.Targets() != 4 {
		t.Errorf("after ] level is %d/%d, want 3/4", s.Size(), s.Targets())
	}

	m = update(t, m, runeKey("["))
	m = update(t, m, runeKey("["))
	if s := m.Session(); s.Size() != 4 || s.Targets() != 8 {
		t.Errorf("after [[ level is %d/%d, want 4/8", s.Size(), s.Targets())
	}
	if got := m.Session().Layout(); got.Size != 4 || got.OriginX != float64((80-4*6)/2) {
		t.Errorf("layout not re-centered: %+v", got)
	}
}

func TestGameRestart(t *testing.T) {
	m := newTestGame(t, testOptions(), 4, 6)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	m = update(t, m, runeKey("r"))

	if m.Session().Moves() != 0 {
		t.Errorf("Moves() = %d after restart", m.Session().Moves())
	}
	if m.Session().Size() != 4 || m.Session().Targets() != 6 {
		t.Error("restart changed the level")
	}
}

func TestGameRecordsPanel(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showRecords {
		t.Fatal("tab did not open the records panel")
	}
	if !strings.Contains(m.View(), "RECORDS") {
		t.Error("records panel not rendered")
	}

	// Keys go to the panel while it is open.
	before := m.Session().Board()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	if m.Session().Board().String() != before.String() {
		t.Error("rotation applied behind the records panel")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showRecords || m.BackToMenu() {
		t.Error("esc should close only the panel")
	}
}

func TestGameBackAndQuit(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)
	if m = update(t, m, runeKey("b")); !m.BackToMenu() {
		t.Error("b did not request the menu")
	}

	m = newTestGame(t, testOptions(), 3, 3)
	next, cmd := m.Update(runeKey("q"))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
}

func TestGameView(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)
	view := m.View()

	for _, want := range []string{"D O T C R A F T", "3x3 · 3 targets", "moves 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	small := update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(small.View(), "too small") {
		t.Error("tiny terminal should show a resize hint")
	}
}

func TestGameStaleTickIgnored(t *testing.T) {
	m := newTestGame(t, testOptions(), 3, 3)

	if _, cmd := m.Update(TickMsg{ID: m.tickID + 1000}); cmd != nil {
		t.Error("tick from another game kept the loop alive")
	}
	if _, cmd := m.Update(TickMsg{ID: m.tickID}); cmd == nil {
		t.Error("own tick did not schedule the next one")
	}
}

func TestGameSavesCompletion(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Store = store
	opts.Player = "alice"
	m := newTestGame(t, opts, 2, 1)

	// One dot on a 2x2 board reaches the target in at most a row then a column move.
	b := m.Session().Board()
	dot, target := b.Dots()[0], b.Targets()[0]
	dr, dc := b.RowCol(dot)
	tr, tc := b.RowCol(target)
	if dc != tc {
		m.apply(dotcraft.RotateRow(dr, dotcraft.Forward))
	}
	if dr != tr {
		m.apply(dotcraft.RotateColumn(tc, dotcraft.Forward))
	}

	if !strings.HasPrefix(m.flash, "Solved") {
		t.Fatalf("flash = %q, want a solve message", m.flash)
	}
	recent, err := store.RecentCompletions(5)
	if err != nil || len(recent) != 1 || recent[0].Player != "alice" || recent[0].Size != 2 {
		t.Errorf("completions = %+v, %v", recent, err)
	}
	if !opts.Records.Query(2, 1).Solved {
		t.Error("shared record store not updated")
	}
}
