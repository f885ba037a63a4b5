package dotcraft

import (
	"math"

	"github.com/vovakirdan/dotcraft/internal/core"
)

// GestureKind is the type of a pointer event.
type GestureKind int

const (
	TouchDown GestureKind = iota
	TouchMove
	TouchUp
)

// GestureEvent is a pointer event in the collaborator's coordinate space.
type GestureEvent struct {
	Kind GestureKind
	X, Y float64
}

// Layout maps the board grid into pointer coordinates.
type Layout struct {
	OriginX, OriginY float64 // top-left corner of cell 0
	CellW, CellH     float64 // cell extent along each axis
	Size             int
}

// CellAt returns the cell index under (x, y), or false outside the grid.
func (l Layout) CellAt(x, y float64) (int, bool) {
	if l.CellW <= 0 || l.CellH <= 0 {
		return 0, false
	}
	col := int(math.Floor((x - l.OriginX) / l.CellW))
	row := int(math.Floor((y - l.OriginY) / l.CellH))
	if col < 0 || col >= l.Size || row < 0 || row >= l.Size {
		return 0, false
	}
	return row*l.Size + col, true
}

// Phase is the classifier state.
type Phase int

const (
	PhaseIdle       Phase = iota
	PhasePending          // pressed, axis not yet decided
	PhaseHorizontal       // committed to the origin's row
	PhaseVertical         // committed to the origin's column
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePending:
		return "Pending"
	case PhaseHorizontal:
		return "Horizontal"
	case PhaseVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// DragView describes the in-progress drag for rendering.
type DragView struct {
	Phase  Phase
	Axis   Axis
	Line   int
	Offset float64 // clamped to one cell along Axis

	// Overflow is the cell whose dot is shown detached at the edge the line
	// is moving toward, or -1 when nothing wraps.
	Overflow int
	// OverflowPos is the detached dot's position along the line, relative to
	// the line start, in pointer units.
	OverflowPos float64
}

// Dragging reports whether a line is currently displaced.
func (v DragView) Dragging() bool {
	return v.Phase == PhaseHorizontal || v.Phase == PhaseVertical
}

// Classifier turns a stream of pointer events into at most one Move per gesture.
// Only one axis is committed per gesture.
type Classifier struct {
	layout Layout
	slop   float64

	phase          Phase
	origin         int
	startX, startY float64
	offset         float64
}

// NewClassifier creates an idle classifier.
func NewClassifier(layout Layout, slop float64) *Classifier {
	return &Classifier{layout: layout, slop: slop}
}

// Layout returns the current grid layout.
func (c *Classifier) Layout() Layout {
	return c.layout
}

// SetLayout replaces the grid layout and drops any gesture in progress.
func (c *Classifier) SetLayout(l Layout) {
	c.layout = l
	c.Reset()
}

// Reset discards any gesture in progress.
func (c *Classifier) Reset() {
	c.phase = PhaseIdle
	c.origin = 0
	c.offset = 0
	c.startX, c.startY = 0, 0
}

// Phase returns the current state.
func (c *Classifier) Phase() Phase {
	return c.phase
}

// Handle feeds one event. It returns a move and true only on a release that
// travelled more than half a cell along the committed axis.
func (c *Classifier) Handle(ev GestureEvent) (Move, bool) {
	switch ev.Kind {
	case TouchDown:
		c.down(ev.X, ev.Y)
	case TouchMove:
		c.move(ev.X, ev.Y)
	case TouchUp:
		return c.up()
	}
	return Move{}, false
}

func (c *Classifier) down(x, y float64) {
	c.Reset()
	i, ok := c.layout.CellAt(x, y)
	if !ok {
		return
	}
	c.phase = PhasePending
	c.origin = i
	c.startX, c.startY = x, y
}

func (c *Classifier) move(x, y float64) {
	if c.phase == PhaseIdle {
		return
	}

	dx, dy := x-c.startX, y-c.startY

	if c.phase == PhasePending {
		if math.Max(math.Abs(dx), math.Abs(dy)) < c.slop {
			return
		}
		if math.Abs(dx) > math.Abs(dy) {
			c.phase = PhaseHorizontal
		} else {
			c.phase = PhaseVertical
		}
	}

	if c.phase == PhaseHorizontal {
		c.offset = core.ClampF(dx, -c.layout.CellW, c.layout.CellW)
	} else {
		c.offset = core.ClampF(dy, -c.layout.CellH, c.layout.CellH)
	}
}

func (c *Classifier) up() (Move, bool) {
	defer c.Reset()

	var m Move
	var cell float64
	switch c.phase {
	case PhaseHorizontal:
		m = RotateRow(c.origin/c.layout.Size, 0)
		cell = c.layout.CellW
	case PhaseVertical:
		m = RotateColumn(c.origin%c.layout.Size, 0)
		cell = c.layout.CellH
	default:
		return Move{}, false
	}

	if math.Abs(c.offset) <= cell/2 {
		return Move{}, false
	}
	m.Dir = Forward
	if c.offset < 0 {
		m.Dir = Backward
	}
	return m, true
}

// View returns the current drag state for rendering.
func (c *Classifier) View() DragView {
	v := DragView{Phase: c.phase, Overflow: -1}
	size := c.layout.Size

	var cell float64
	switch c.phase {
	case PhaseHorizontal:
		v.Axis = AxisRow
		v.Line = c.origin / size
		cell = c.layout.CellW
	case PhaseVertical:
		v.Axis = AxisColumn
		v.Line = c.origin % size
		cell = c.layout.CellH
	default:
		return v
	}
	v.Offset = c.offset

	first, last := v.Line*size, v.Line*size+size-1
	if v.Axis == AxisColumn {
		first, last = v.Line, v.Line+(size-1)*size
	}

	switch {
	case c.offset > 0:
		v.Overflow = last
		v.OverflowPos = c.offset - cell
	case c.offset < 0:
		v.Overflow = first
		v.OverflowPos = float64(size)*cell + c.offset
	}
	return v
}
