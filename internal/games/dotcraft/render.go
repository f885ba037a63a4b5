package dotcraft

import (
	"github.com/vovakirdan/dotcraft/internal/core"
)

const (
	CellWidth  = 6 // Terminal columns per board cell
	CellHeight = 3 // Terminal rows per board cell
)

const (
	glyphDot   = '●'
	glyphEmpty = '·'
)

// BoardLayout centers a size×size board horizontally, starting at row top.
// Non-positive cell dimensions fall back to CellWidth and CellHeight.
func BoardLayout(screenW, size, top, cellW, cellH int) Layout {
	if cellW <= 0 {
		cellW = CellWidth
	}
	if cellH <= 0 {
		cellH = CellHeight
	}
	return Layout{
		OriginX: float64(max((screenW-size*cellW)/2, 1)),
		OriginY: float64(top),
		CellW:   float64(cellW),
		CellH:   float64(cellH),
		Size:    size,
	}
}

// BoardRect returns the screen area covered by the cells of l.
func BoardRect(l Layout) core.Rect {
	return core.NewRect(int(l.OriginX), int(l.OriginY),
		l.Size*int(l.CellW), l.Size*int(l.CellH))
}

// View is everything needed to draw a board.
type View struct {
	Board  *Board
	Layout Layout
	Drag   DragView
	Cursor int // highlighted cell, -1 for none
}

// DrawBoard draws the frame, rings and dots. The dragged line's dots are
// displaced by the drag offset and the wrapping dot is drawn at the edge.
func DrawBoard(dst *core.Screen, v View) {
	b, l := v.Board, v.Layout
	area := BoardRect(l)
	dst.DrawBox(core.NewRect(area.X-1, area.Y-1, area.W+2, area.H+2), core.ColorGray)

	for i := range b.Cells() {
		cx, cy := cellCenter(l, b, i)
		dragged := inDraggedLine(b, v.Drag, i)

		if b.IsTarget(i) {
			ringColor := core.ColorYellow
			if b.HasDot(i) && !dragged {
				ringColor = core.ColorBrightGreen
			}
			dst.SetColor(cx-1, cy, '(', ringColor)
			dst.SetColor(cx+1, cy, ')', ringColor)
		}

		if i == v.Cursor {
			x0 := cx - int(l.CellW)/2
			dst.SetColor(x0, cy, '[', core.ColorCyan)
			dst.SetColor(x0+int(l.CellW)-1, cy, ']', core.ColorCyan)
		}

		if dragged {
			continue
		}
		switch {
		case b.HasDot(i) && b.IsTarget(i):
			dst.SetColor(cx, cy, glyphDot, core.ColorBrightGreen)
		case b.HasDot(i):
			dst.SetColor(cx, cy, glyphDot, core.ColorBrightWhite)
		case !b.IsTarget(i):
			dst.SetColor(cx, cy, glyphEmpty, core.ColorGray)
		}
	}

	if v.Drag.Dragging() {
		drawDraggedLine(dst, b, l, area, v.Drag)
	}
}

func drawDraggedLine(dst *core.Screen, b *Board, l Layout, area core.Rect, d DragView) {
	shift := core.Round(d.Offset)
	for _, i := range b.Line(d.Axis, d.Line) {
		if !b.HasDot(i) {
			continue
		}
		cx, cy := cellCenter(l, b, i)
		if d.Axis == AxisRow {
			cx += shift
		} else {
			cy += shift
		}
		if area.Contains(cx, cy) {
			dst.SetColor(cx, cy, glyphDot, core.ColorBrightWhite)
		}
	}

	if d.Overflow < 0 || !b.HasDot(d.Overflow) {
		return
	}
	cx, cy := cellCenter(l, b, d.Overflow)
	pos := core.Round(d.OverflowPos)
	if d.Axis == AxisRow {
		cx = area.X + pos + int(l.CellW)/2
	} else {
		cy = area.Y + pos + int(l.CellH)/2
	}
	if area.Contains(cx, cy) {
		dst.SetColor(cx, cy, glyphDot, core.ColorWhite)
	}
}

func cellCenter(l Layout, b *Board, i int) (int, int) {
	row, col := b.RowCol(i)
	x := int(l.OriginX) + col*int(l.CellW) + int(l.CellW)/2
	y := int(l.OriginY) + row*int(l.CellH) + int(l.CellH)/2
	return x, y
}

func inDraggedLine(b *Board, d DragView, i int) bool {
	if !d.Dragging() {
		return false
	}
	row, col := b.RowCol(i)
	if d.Axis == AxisRow {
		return row == d.Line
	}
	return col == d.Line
}
