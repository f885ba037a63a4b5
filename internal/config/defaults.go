package config

import (
	_ "embed"
)

//go:embed defaults/dotcraft.yaml
var defaultDotcraftYAML []byte

// DefaultDotcraftConfig returns the built-in configuration.
func DefaultDotcraftConfig() DotcraftConfig {
	return DotcraftConfig{
		Board: BoardConfig{
			Size:    3,
			Targets: 3,
		},
		Levels: []Level{
			{Size: 3, Targets: 3},
			{Size: 3, Targets: 4},
			{Size: 3, Targets: 5},
			{Size: 4, Targets: 5},
			{Size: 4, Targets: 6},
			{Size: 4, Targets: 7},
			{Size: 4, Targets: 8},
		},
		Generation: GenerationConfig{
			MaxAttempts:  200000, // 4x4 with 8 targets accepts one draw in 12870
			AllowOverlap: true,
			Retries:      3,
		},
		Gesture: GestureConfig{
			Slop:       1,
			CellWidth:  6,
			CellHeight: 3,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDotcraftYAML
}
