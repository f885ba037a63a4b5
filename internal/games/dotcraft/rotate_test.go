package dotcraft

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func TestShiftLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		k        int
		expected []int
	}{
		{"forward one", []int{1, 2, 3}, 1, []int{3, 1, 2}},
		{"backward one", []int{1, 2, 3}, -1, []int{2, 3, 1}},
		{"full cycle", []int{1, 2, 3, 4}, 4, []int{1, 2, 3, 4}},
		{"more than size", []int{1, 2, 3, 4}, 6, []int{3, 4, 1, 2}},
		{"large negative", []int{1, 2, 3, 4, 5}, -7, []int{3, 4, 5, 1, 2}},
		{"empty", []int{}, 3, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shiftLine(tt.input, tt.k)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("shiftLine(%v, %d) = %v, want %v", tt.input, tt.k, got, tt.expected)
			}
		})
	}
}

func rowValues(b *Board, r int) []bool {
	out := make([]bool, 0, b.Size())
	for _, i := range b.Line(AxisRow, r) {
		out = append(out, b.HasDot(i))
	}
	return out
}

func TestApplyRotateRowExample(t *testing.T) {
	b := mustBoard(t, 3, []int{0, 4, 8}, []int{1, 3, 5})

	next, err := Apply(b, RotateRow(0, Forward))
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	// Row 0 [0,1,0] becomes [0,0,1].
	if got := rowValues(next, 0); !slices.Equal(got, []bool{false, false, true}) {
		t.Errorf("row 0 after RotateRow(0,+1) = %v", got)
	}
	if next.Solved() {
		t.Error("board should not be solved")
	}
	if !b.HasDot(1) || b.HasDot(2) {
		t.Error("Apply must not mutate its input")
	}
	if !slices.Equal(next.Targets(), b.Targets()) {
		t.Error("rotation must not touch targets")
	}
}

func TestApplyRotateColumn(t *testing.T) {
	b := mustBoard(t, 4, []int{0, 1, 2, 3}, []int{4, 9, 14, 15})

	next, err := Apply(b, RotateColumn(1, Backward))
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	// Column 1 is cells 1,5,9,13 with dots [0,0,1,0]; backward gives [0,1,0,0].
	if !slices.Equal(next.Dots(), []int{4, 5, 14, 15}) {
		t.Errorf("dots after RotateColumn(1,-1) = %v", next.Dots())
	}
}

func TestApplyInvalidMove(t *testing.T) {
	b := mustBoard(t, 3, []int{0}, []int{1})

	tests := []struct {
		name string
		move Move
	}{
		{"row out of range", RotateRow(3, Forward)},
		{"negative column", RotateColumn(-1, Forward)},
		{"zero direction", RotateRow(0, 0)},
		{"double step", RotateColumn(0, 2)},
		{"unknown axis", Move{Axis: Axis(7), Line: 0, Dir: Forward}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(b, tt.move); !errors.Is(err, ErrInvalidMove) {
				t.Errorf("Apply(%v) error = %v, want ErrInvalidMove", tt.move, err)
			}
		})
	}
}

func TestRotationRoundTrip(t *testing.T) {
	gen := NewGenerator(7)
	for size := 2; size <= 6; size++ {
		b, err := gen.Generate(size, max(1, size*size/3))
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", size, err)
		}

		for line := range size {
			for _, m := range []Move{RotateRow(line, Forward), RotateColumn(line, Forward)} {
				there, _ := Apply(b, m)
				back, _ := Apply(there, m.Inverse())
				if !slices.Equal(back.Dots(), b.Dots()) {
					t.Errorf("size %d: %v then inverse did not restore the board", size, m)
				}

				cycled := b
				for range size {
					cycled, _ = Apply(cycled, m)
				}
				if !slices.Equal(cycled.Dots(), b.Dots()) {
					t.Errorf("size %d: %v applied %d times is not the identity", size, m, size)
				}
			}
		}
	}
}

func TestApplyNMatchesRepeatedApply(t *testing.T) {
	b := mustBoard(t, 5, []int{0, 6, 12, 18, 24}, []int{1, 2, 7, 20, 23})
	m := RotateRow(4, Forward)

	for k := -6; k <= 6; k++ {
		want := b
		step := m
		if k < 0 {
			step = m.Inverse()
		}
		for range abs(k) {
			want, _ = Apply(want, step)
		}

		got, err := ApplyN(b, m, k)
		if err != nil {
			t.Fatalf("ApplyN(k=%d) failed: %v", k, err)
		}
		if !slices.Equal(got.Dots(), want.Dots()) {
			t.Errorf("ApplyN(k=%d) = %v, want %v", k, got.Dots(), want.Dots())
		}
	}
}

func TestRotationCommutativity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gen := &Generator{Rand: rng}
	b, err := gen.Generate(4, 6)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	pairs := [][2]Move{
		{RotateRow(0, Forward), RotateRow(2, Backward)},
		{RotateRow(1, Backward), RotateRow(3, Backward)},
		{RotateColumn(0, Forward), RotateColumn(3, Forward)},
		{RotateColumn(1, Backward), RotateColumn(2, Forward)},
	}

	for _, p := range pairs {
		ab, _ := Apply(b, p[0])
		ab, _ = Apply(ab, p[1])
		ba, _ := Apply(b, p[1])
		ba, _ = Apply(ba, p[0])
		if !slices.Equal(ab.Dots(), ba.Dots()) {
			t.Errorf("%v and %v do not commute", p[0], p[1])
		}
	}
}

func TestRotationConservesDots(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	gen := &Generator{Rand: rng}
	b, err := gen.Generate(4, 7)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	for range 500 {
		m := Move{Axis: Axis(rng.Intn(2)), Line: rng.Intn(4), Dir: []int{Forward, Backward}[rng.Intn(2)]}
		b, err = Apply(b, m)
		if err != nil {
			t.Fatalf("Apply(%v) failed: %v", m, err)
		}
		if b.DotCount() != 7 || b.TargetCount() != 7 {
			t.Fatalf("after %v: %d dots, %d targets", m, b.DotCount(), b.TargetCount())
		}
	}
}

func TestMoveString(t *testing.T) {
	if got := RotateRow(0, Forward).String(); got != "RotateRow(0,+1)" {
		t.Errorf("String() = %q", got)
	}
	if got := RotateColumn(2, Backward).String(); got != "RotateColumn(2,-1)" {
		t.Errorf("String() = %q", got)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
