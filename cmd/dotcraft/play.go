package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotcraft/internal/config"
	"github.com/vovakirdan/dotcraft/internal/platform/tui"
)

var (
	flagSize    int
	flagTargets int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play DotCraft",
	Long: `Start the level selector, or jump straight into a board when both
--size and --targets are given.

Controls:
  Mouse drag      - Slide a row or column
  Arrows/hjkl     - Move the cursor
  Shift+Arrows    - Rotate the cursor's row or column (also H/J/K/L)
  R               - New board
  [ / ]           - Previous/next level
  Tab             - Records
  B/Esc           - Back to the level selector
  Q/Ctrl+C        - Quit

Examples:
  dotcraft play
  dotcraft play --size 3 --targets 5
  dotcraft play --seed 42 --log-file /tmp/dotcraft.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size (with --targets)")
	playCmd.Flags().IntVar(&flagTargets, "targets", 0, "Number of rings (with --size)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	sizeSet, targetsSet := cmd.Flags().Changed("size"), cmd.Flags().Changed("targets")
	if sizeSet != targetsSet {
		return fmt.Errorf("--size and --targets must be given together")
	}

	env, err := openLocalEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	var start *config.Level
	if sizeSet {
		start = &config.Level{Size: flagSize, Targets: flagTargets}
	}

	env.opts.Logger.Info("play started", "size", flagSize, "targets", flagTargets, "seed", flagSeed)
	if err := tui.Run(env.opts, start); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
