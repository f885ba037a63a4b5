package dotcraft

import (
	"testing"

	"github.com/vovakirdan/dotcraft/internal/core"
)

func TestBoardLayout(t *testing.T) {
	tests := []struct {
		name         string
		screenW      int
		size         int
		cellW, cellH int
		wantX        float64
		wantW, wantH float64
	}{
		{"centered 3x3", 80, 3, 6, 3, 31, 6, 3},
		{"centered 4x4", 80, 4, 6, 3, 28, 6, 3},
		{"defaults for zero cells", 80, 3, 0, 0, 31, CellWidth, CellHeight},
		{"narrow screen keeps a margin", 10, 4, 6, 3, 1, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := BoardLayout(tt.screenW, tt.size, 4, tt.cellW, tt.cellH)
			if l.OriginX != tt.wantX || l.OriginY != 4 || l.CellW != tt.wantW || l.CellH != tt.wantH || l.Size != tt.size {
				t.Errorf("BoardLayout() = %+v", l)
			}
		})
	}
}

func TestDrawBoard(t *testing.T) {
	b := mustBoard(t, 3, []int{0, 4, 8}, []int{1, 3, 4})
	l := BoardLayout(40, 3, 2, 6, 3) // cells start at (11, 2)
	s := core.NewScreen(40, 14)

	DrawBoard(s, View{Board: b, Layout: l, Cursor: 8})

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"dot off target", 20, 3, glyphDot},
		{"empty cell", 26, 3, glyphEmpty},
		{"open ring left", 13, 3, '('},
		{"open ring center", 14, 3, ' '},
		{"open ring right", 15, 3, ')'},
		{"filled ring", 20, 6, glyphDot},
		{"cursor left", 23, 9, '['},
		{"cursor right", 28, 9, ']'},
	}
	for _, tt := range tests {
		if got := s.Get(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Get(%d, %d) = %q, want %q", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	if c := s.GetCell(20, 6); c.Color != core.ColorBrightGreen {
		t.Errorf("dot on ring color = %v, want bright green", c.Color)
	}
	if s.Get(10, 1) == ' ' {
		t.Error("frame not drawn around the board")
	}
}

func TestDrawBoardDragOffset(t *testing.T) {
	b := mustBoard(t, 3, []int{0, 4, 8}, []int{1, 3, 5})
	l := BoardLayout(40, 3, 2, 6, 3)
	c := NewClassifier(l, 1)

	// Grab cell 1 at its center and pull four columns right.
	c.Handle(GestureEvent{Kind: TouchDown, X: 20.5, Y: 3.5})
	c.Handle(GestureEvent{Kind: TouchMove, X: 24.5, Y: 3.5})

	s := core.NewScreen(40, 14)
	DrawBoard(s, View{Board: b, Layout: l, Drag: c.View(), Cursor: -1})

	if s.Get(20, 3) == glyphDot {
		t.Error("dragged dot still drawn at its cell")
	}
	if s.Get(24, 3) != glyphDot {
		t.Error("dragged dot not drawn at the offset")
	}
	// Row 1 is untouched.
	if s.Get(14, 6) != glyphDot {
		t.Error("dot in another row moved")
	}
}
