package dotcraft

import (
	"fmt"

	"github.com/vovakirdan/dotcraft/internal/core"
)

// Axis selects whether a move rotates a row or a column.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case AxisRow:
		return "row"
	case AxisColumn:
		return "column"
	default:
		return "unknown"
	}
}

// Direction constants for Move.Dir.
const (
	Forward  = 1  // toward increasing column/row index
	Backward = -1 // toward decreasing column/row index
)

// Move is a single cyclic shift of one row or column by one cell.
type Move struct {
	Axis Axis
	Line int // row index for AxisRow, column index for AxisColumn
	Dir  int // Forward or Backward
}

// RotateRow returns a move shifting row r by dir.
func RotateRow(r, dir int) Move {
	return Move{Axis: AxisRow, Line: r, Dir: dir}
}

// RotateColumn returns a move shifting column c by dir.
func RotateColumn(c, dir int) Move {
	return Move{Axis: AxisColumn, Line: c, Dir: dir}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	m.Dir = -m.Dir
	return m
}

// String formats the move as e.g. "RotateRow(0,+1)".
func (m Move) String() string {
	name := "RotateRow"
	if m.Axis == AxisColumn {
		name = "RotateColumn"
	}
	return fmt.Sprintf("%s(%d,%+d)", name, m.Line, m.Dir)
}

// Validate checks that the move addresses an existing line of a board of
// the given size with a unit direction.
func (m Move) Validate(size int) error {
	if m.Axis != AxisRow && m.Axis != AxisColumn {
		return fmt.Errorf("dotcraft: unknown axis %d: %w", m.Axis, ErrInvalidMove)
	}
	if m.Line < 0 || m.Line >= size {
		return fmt.Errorf("dotcraft: %s %d out of range [0,%d): %w", m.Axis, m.Line, size, ErrInvalidMove)
	}
	if m.Dir != Forward && m.Dir != Backward {
		return fmt.Errorf("dotcraft: direction %d not ±1: %w", m.Dir, ErrInvalidMove)
	}
	return nil
}

// Apply returns a copy of b with the move applied. Targets are unchanged.
func Apply(b *Board, m Move) (*Board, error) {
	return ApplyN(b, m, 1)
}

// ApplyN returns a copy of b with the move applied k times. Negative k
// rotates the other way; k is reduced modulo the board size.
func ApplyN(b *Board, m Move, k int) (*Board, error) {
	if err := m.Validate(b.size); err != nil {
		return nil, err
	}
	next := b.Clone()
	next.rotate(m.Axis, m.Line, m.Dir*k)
	return next, nil
}

// rotate shifts the dot layer of one line in place by k cells.
func (b *Board) rotate(axis Axis, line, k int) {
	cells := b.Line(axis, line)
	values := make([]bool, len(cells))
	for i, c := range cells {
		values[i] = b.dots[c]
	}
	values = shiftLine(values, k)
	for i, c := range cells {
		b.dots[c] = values[i]
	}
}

// shiftLine returns line cyclically shifted by k positions: element i moves to
// (i+k) mod n. The input slice is not modified.
func shiftLine[T any](line []T, k int) []T {
	n := len(line)
	out := make([]T, n)
	if n == 0 {
		return out
	}
	k = core.Wrap(k, n)
	for i, v := range line {
		out[(i+k)%n] = v
	}
	return out
}
