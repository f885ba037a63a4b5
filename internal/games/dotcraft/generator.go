package dotcraft

import (
	"fmt"
	"math/rand"
)

// DefaultMaxAttempts is the default cap on rejected dot placements.
const DefaultMaxAttempts = 10000

// Generator produces random starting boards.
type Generator struct {
	Rand *rand.Rand

	// MaxAttempts caps how many dot sets may be rejected for intersecting
	// the targets. Zero means DefaultMaxAttempts.
	MaxAttempts int

	// AllowOverlap permits boards with more than half the cells as targets.
	// Dots then cover every non-target cell and as few targets as possible.
	AllowOverlap bool
}

// NewGenerator returns a generator seeded with seed and default limits.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Rand:        rand.New(rand.NewSource(seed)),
		MaxAttempts: DefaultMaxAttempts,
	}
}

// CheckConfiguration validates a size/target-count pair without generating.
func (g *Generator) CheckConfiguration(size, targets int) error {
	if size < MinSize {
		return fmt.Errorf("dotcraft: size %d below minimum %d: %w", size, MinSize, ErrInvalidConfiguration)
	}
	cells := size * size
	if targets < 1 || targets > cells {
		return fmt.Errorf("dotcraft: %d targets outside [1,%d]: %w", targets, cells, ErrInvalidConfiguration)
	}
	if 2*targets <= cells {
		return nil
	}
	if !g.AllowOverlap || targets == cells {
		return fmt.Errorf("dotcraft: %d targets leave no disjoint placement on %d cells: %w", targets, cells, ErrInvalidConfiguration)
	}
	return nil
}

// Generate returns a board of the given size with targets rings and as many dots.
// No dot starts on a target unless the overlap policy requires it.
func (g *Generator) Generate(size, targets int) (*Board, error) {
	if err := g.CheckConfiguration(size, targets); err != nil {
		return nil, err
	}

	cells := size * size
	b := newEmptyBoard(size)
	for _, i := range g.sample(cells, targets) {
		b.targets[i] = true
	}

	if 2*targets > cells {
		g.placeDense(b, targets)
		return b, nil
	}

	maxAttempts := g.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		dots := g.sample(cells, targets)
		if intersects(b.targets, dots) {
			continue
		}
		for _, i := range dots {
			b.dots[i] = true
		}
		return b, nil
	}

	return nil, fmt.Errorf("dotcraft: no disjoint placement for %d targets on %dx%d after %d attempts: %w",
		targets, size, size, maxAttempts, ErrGenerationExhausted)
}

// placeDense fills every non-target cell and spreads the remaining dots over
// randomly chosen targets.
func (g *Generator) placeDense(b *Board, targets int) {
	cells := b.Cells()
	for i := range cells {
		if !b.targets[i] {
			b.dots[i] = true
		}
	}

	extra := 2*targets - cells
	ring := b.Targets()
	for _, k := range g.sample(len(ring), extra) {
		b.dots[ring[k]] = true
	}
}

// sample picks k distinct values from [0,n) uniformly without replacement.
func (g *Generator) sample(n, k int) []int {
	return g.Rand.Perm(n)[:k]
}

func intersects(set []bool, cells []int) bool {
	for _, i := range cells {
		if set[i] {
			return true
		}
	}
	return false
}
