package dotcraft

import (
	"errors"
	"testing"
)

func mustBoard(t *testing.T, size int, targets, dots []int) *Board {
	t.Helper()
	b, err := NewBoard(size, targets, dots)
	if err != nil {
		t.Fatalf("NewBoard(%d, %v, %v) failed: %v", size, targets, dots, err)
	}
	return b
}

func TestNewBoardRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		targets []int
		dots    []int
	}{
		{"size too small", 1, []int{0}, []int{0}},
		{"no targets", 3, nil, nil},
		{"count mismatch", 3, []int{0, 1}, []int{2}},
		{"target out of range", 3, []int{9}, []int{0}},
		{"negative dot", 3, []int{0}, []int{-1}},
		{"duplicate target", 3, []int{4, 4}, []int{0, 1}},
		{"duplicate dot", 3, []int{4, 5}, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.size, tt.targets, tt.dots)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("NewBoard() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestBoardIndexing(t *testing.T) {
	b := mustBoard(t, 4, []int{0}, []int{15})

	for i := range b.Cells() {
		row, col := b.RowCol(i)
		if b.Index(row, col) != i {
			t.Errorf("Index(RowCol(%d)) = %d", i, b.Index(row, col))
		}
	}

	if row, col := b.RowCol(6); row != 1 || col != 2 {
		t.Errorf("RowCol(6) = (%d, %d), want (1, 2)", row, col)
	}
	if b.HasDot(16) || b.IsTarget(-1) {
		t.Error("out-of-range cells must report false")
	}
}

func TestBoardLine(t *testing.T) {
	b := mustBoard(t, 3, []int{0}, []int{1})

	row := b.Line(AxisRow, 1)
	col := b.Line(AxisColumn, 2)

	wantRow := []int{3, 4, 5}
	wantCol := []int{2, 5, 8}
	for k := range 3 {
		if row[k] != wantRow[k] {
			t.Errorf("row line = %v, want %v", row, wantRow)
			break
		}
	}
	for k := range 3 {
		if col[k] != wantCol[k] {
			t.Errorf("column line = %v, want %v", col, wantCol)
			break
		}
	}
}

func TestBoardSolvedExact(t *testing.T) {
	solved := mustBoard(t, 3, []int{0, 4, 8}, []int{0, 4, 8})
	if !solved.Solved() {
		t.Error("board with dots == targets should be solved")
	}
	if solved.Misplaced() != 0 {
		t.Errorf("Misplaced() = %d, want 0", solved.Misplaced())
	}

	// Any single differing index breaks the win.
	for i := range solved.Cells() {
		b := solved.Clone()
		b.dots[i] = !b.dots[i]
		if b.Solved() {
			t.Errorf("flipping cell %d should unsolve the board", i)
		}
	}
}

func TestBoardCloneIsDeep(t *testing.T) {
	b := mustBoard(t, 3, []int{0, 4, 8}, []int{1, 3, 5})
	c := b.Clone()
	c.dots[1] = false

	if !b.HasDot(1) {
		t.Error("mutating a clone changed the original")
	}
}

func TestBoardString(t *testing.T) {
	b := mustBoard(t, 3, []int{0, 4, 8}, []int{0, 3, 5})
	want := "O..\n*o*\n..o"
	if b.String() != want {
		t.Errorf("String() =\n%s\nwant\n%s", b.String(), want)
	}
}
