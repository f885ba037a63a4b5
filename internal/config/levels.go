package config

import (
	"fmt"

	"github.com/vovakirdan/dotcraft/internal/core"
)

// Label returns the level's name, or "SxS · K" when it has none.
func (l Level) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("%dx%d · %d", l.Size, l.Size, l.Targets)
}

// LevelIndex returns the position of (size, targets) in Levels, or -1.
func (c DotcraftConfig) LevelIndex(size, targets int) int {
	for i, l := range c.Levels {
		if l.Size == size && l.Targets == targets {
			return i
		}
	}
	return -1
}

// StartLevel returns the configured starting level.
func (c DotcraftConfig) StartLevel() Level {
	if i := c.LevelIndex(c.Board.Size, c.Board.Targets); i >= 0 {
		return c.Levels[i]
	}
	return Level{Size: c.Board.Size, Targets: c.Board.Targets}
}

// Step returns the level delta positions away from (size, targets),
// wrapping around the list. A level missing from the list steps from
// the first entry.
func (c DotcraftConfig) Step(size, targets, delta int) Level {
	n := len(c.Levels)
	if n == 0 {
		return Level{Size: size, Targets: targets}
	}
	i := max(c.LevelIndex(size, targets), 0)
	return c.Levels[core.Wrap(i+delta, n)]
}
