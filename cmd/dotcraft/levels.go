package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotcraft/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the configured levels",
	Long:  `Shows the levels offered by the selector, in order, from the active dotcraft.yaml.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	fmt.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxLabel := len("Level")
	for _, l := range cfg.Levels {
		maxLabel = max(maxLabel, len([]rune(l.Label())))
	}

	fmt.Printf("  %-3s  %-*s  %-4s  %s\n", "#", maxLabel, "Level", "Size", "Rings")
	fmt.Printf("  %-3s  %-*s  %-4s  %s\n", "-", maxLabel, "-----", "----", "-----")
	for i, l := range cfg.Levels {
		marker := ""
		if l.Size == cfg.Board.Size && l.Targets == cfg.Board.Targets {
			marker = "  (default)"
		}
		label := l.Label()
		pad := maxLabel - len([]rune(label))
		fmt.Printf("  %-3d  %s%*s  %-4s  %d%s\n", i+1, label, pad, "", fmt.Sprintf("%dx%d", l.Size, l.Size), l.Targets, marker)
	}

	fmt.Println()
	fmt.Println("Run 'dotcraft play --size N --targets K' to start a level directly.")
	return nil
}
