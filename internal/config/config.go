// Package config provides YAML-based configuration loading for dotcraft:
// the playable levels, board generation limits and pointer geometry.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DotcraftConfig contains all configuration for the puzzle.
type DotcraftConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Levels     []Level          `yaml:"levels"`
	Generation GenerationConfig `yaml:"generation"`
	Gesture    GestureConfig    `yaml:"gesture"`
}

// BoardConfig selects the level a game starts on.
type BoardConfig struct {
	Size    int `yaml:"size"`
	Targets int `yaml:"targets"`
}

// Level is one supported (size, targets) configuration.
type Level struct {
	Name    string `yaml:"name"`
	Size    int    `yaml:"size"`
	Targets int    `yaml:"targets"`
}

// GenerationConfig tunes the random board generator.
type GenerationConfig struct {
	MaxAttempts  int  `yaml:"max_attempts"`  // rejected placements before giving up
	AllowOverlap bool `yaml:"allow_overlap"` // permit levels with more targets than free cells
	Retries      int  `yaml:"retries"`       // regenerations after an exhausted attempt
}

// GestureConfig defines drag recognition and the terminal cell geometry.
type GestureConfig struct {
	Slop       float64 `yaml:"slop"`        // movement before a drag picks an axis, in columns
	CellWidth  int     `yaml:"cell_width"`  // terminal columns per board cell
	CellHeight int     `yaml:"cell_height"` // terminal rows per board cell
}

// Validate checks that every value can be used to start a game.
func (c DotcraftConfig) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no levels defined", ErrInvalidConfig)
	}
	for i, l := range c.Levels {
		if err := c.checkLevel(l); err != nil {
			return fmt.Errorf("%w: level %d: %v", ErrInvalidConfig, i, err)
		}
	}
	if err := c.checkLevel(Level{Size: c.Board.Size, Targets: c.Board.Targets}); err != nil {
		return fmt.Errorf("%w: board: %v", ErrInvalidConfig, err)
	}
	if c.Generation.MaxAttempts < 0 || c.Generation.Retries < 0 {
		return fmt.Errorf("%w: generation limits must not be negative", ErrInvalidConfig)
	}
	if c.Gesture.Slop < 0 {
		return fmt.Errorf("%w: gesture slop must not be negative", ErrInvalidConfig)
	}
	if c.Gesture.CellWidth < 3 || c.Gesture.CellHeight < 1 {
		return fmt.Errorf("%w: cell geometry %dx%d too small", ErrInvalidConfig, c.Gesture.CellWidth, c.Gesture.CellHeight)
	}
	return nil
}

func (c DotcraftConfig) checkLevel(l Level) error {
	cells := l.Size * l.Size
	switch {
	case l.Size < 2:
		return fmt.Errorf("size %d below 2", l.Size)
	case l.Targets < 1 || l.Targets >= cells:
		return fmt.Errorf("%d targets do not fit a %dx%d board", l.Targets, l.Size, l.Size)
	case 2*l.Targets > cells && !c.Generation.AllowOverlap:
		return fmt.Errorf("%s needs generation.allow_overlap", l.Label())
	}
	return nil
}
