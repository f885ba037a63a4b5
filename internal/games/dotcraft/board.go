// Package dotcraft implements the sliding-dot puzzle engine: board generation,
// cyclic row/column rotation, win evaluation, drag gesture classification and
// best-time records. It has no terminal or storage dependencies; the platform
// layer feeds it moves and renders its state.
package dotcraft

import (
	"errors"
	"fmt"
)

// MinSize is the smallest supported grid dimension.
const MinSize = 2

var (
	// ErrInvalidConfiguration is returned for a size/target-count combination
	// that cannot produce a playable board.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrGenerationExhausted is returned when the generator hits its retry cap.
	// Callers may retry or fall back to a smaller target count.
	ErrGenerationExhausted = errors.New("generation exhausted")

	// ErrInvalidMove is returned for a move whose line or direction does not
	// fit the board.
	ErrInvalidMove = errors.New("invalid move")

	// ErrBoardSolved is returned for a move on a solved board that could not
	// be replaced. Restart generates a new one.
	ErrBoardSolved = errors.New("board already solved")
)

// Board is an N×N grid of cells. Each cell may hold a dot and may be a target
// ring. Cells are indexed row-major: index = row*size + col.
type Board struct {
	size    int
	targets []bool
	dots    []bool
}

// NewBoard builds a board from explicit target and dot index sets.
// Both sets must be non-empty, duplicate-free, in range and of equal size.
func NewBoard(size int, targets, dots []int) (*Board, error) {
	if size < MinSize {
		return nil, fmt.Errorf("dotcraft: size %d below minimum %d: %w", size, MinSize, ErrInvalidConfiguration)
	}
	if len(targets) == 0 || len(targets) != len(dots) {
		return nil, fmt.Errorf("dotcraft: %d targets for %d dots: %w", len(targets), len(dots), ErrInvalidConfiguration)
	}

	b := newEmptyBoard(size)
	if err := fillCells(b.targets, targets); err != nil {
		return nil, fmt.Errorf("dotcraft: targets: %w", err)
	}
	if err := fillCells(b.dots, dots); err != nil {
		return nil, fmt.Errorf("dotcraft: dots: %w", err)
	}
	return b, nil
}

func newEmptyBoard(size int) *Board {
	return &Board{
		size:    size,
		targets: make([]bool, size*size),
		dots:    make([]bool, size*size),
	}
}

// fillCells marks each index in cells, rejecting duplicates and out-of-range values.
func fillCells(dst []bool, cells []int) error {
	for _, i := range cells {
		if i < 0 || i >= len(dst) {
			return fmt.Errorf("cell %d out of range [0,%d): %w", i, len(dst), ErrInvalidConfiguration)
		}
		if dst[i] {
			return fmt.Errorf("duplicate cell %d: %w", i, ErrInvalidConfiguration)
		}
		dst[i] = true
	}
	return nil
}

// Size returns the grid dimension.
func (b *Board) Size() int {
	return b.size
}

// Cells returns the number of cells (size²).
func (b *Board) Cells() int {
	return len(b.dots)
}

// Index converts a row/column pair into a cell index.
func (b *Board) Index(row, col int) int {
	return row*b.size + col
}

// RowCol converts a cell index into its row and column.
func (b *Board) RowCol(i int) (row, col int) {
	return i / b.size, i % b.size
}

// InBounds reports whether i is a valid cell index.
func (b *Board) InBounds(i int) bool {
	return i >= 0 && i < len(b.dots)
}

// HasDot reports whether the cell holds a dot.
func (b *Board) HasDot(i int) bool {
	return b.InBounds(i) && b.dots[i]
}

// IsTarget reports whether the cell is a target ring.
func (b *Board) IsTarget(i int) bool {
	return b.InBounds(i) && b.targets[i]
}

// DotCount returns the number of occupied cells.
func (b *Board) DotCount() int {
	return countSet(b.dots)
}

// TargetCount returns the number of target rings.
func (b *Board) TargetCount() int {
	return countSet(b.targets)
}

// Dots returns the occupied cell indices in ascending order.
func (b *Board) Dots() []int {
	return setIndices(b.dots)
}

// Targets returns the target cell indices in ascending order.
func (b *Board) Targets() []int {
	return setIndices(b.targets)
}

// Solved reports whether every cell holds a dot exactly when it is a target.
func (b *Board) Solved() bool {
	for i := range b.dots {
		if b.dots[i] != b.targets[i] {
			return false
		}
	}
	return true
}

// Misplaced returns how many dots are not on a target.
func (b *Board) Misplaced() int {
	n := 0
	for i := range b.dots {
		if b.dots[i] && !b.targets[i] {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		size:    b.size,
		targets: make([]bool, len(b.targets)),
		dots:    make([]bool, len(b.dots)),
	}
	copy(c.targets, b.targets)
	copy(c.dots, b.dots)
	return c
}

// Line returns the cell indices of a row or column in forward order.
func (b *Board) Line(axis Axis, line int) []int {
	cells := make([]int, b.size)
	for k := range b.size {
		if axis == AxisRow {
			cells[k] = b.Index(line, k)
		} else {
			cells[k] = b.Index(k, line)
		}
	}
	return cells
}

// String renders the board as text: 'O' dot on ring, 'o' ring, '*' dot, '.' empty.
func (b *Board) String() string {
	buf := make([]byte, 0, len(b.dots)+b.size)
	for i := range b.dots {
		if i > 0 && i%b.size == 0 {
			buf = append(buf, '\n')
		}
		switch {
		case b.dots[i] && b.targets[i]:
			buf = append(buf, 'O')
		case b.targets[i]:
			buf = append(buf, 'o')
		case b.dots[i]:
			buf = append(buf, '*')
		default:
			buf = append(buf, '.')
		}
	}
	return string(buf)
}

func countSet(cells []bool) int {
	n := 0
	for _, v := range cells {
		if v {
			n++
		}
	}
	return n
}

func setIndices(cells []bool) []int {
	out := make([]int, 0, len(cells))
	for i, v := range cells {
		if v {
			out = append(out, i)
		}
	}
	return out
}
