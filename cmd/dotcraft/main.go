// dotcraft is a sliding-dot puzzle for the terminal: rotate rows and
// columns of a grid until every dot sits on a ring.
//
// Usage:
//
//	dotcraft play                 - Pick a level and play
//	dotcraft play --size 4 --targets 6
//	dotcraft levels               - List configured levels
//	dotcraft records              - Show best times
//	dotcraft serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - HUD refresh rate (default: 10)
//	--seed <value>     - RNG seed for reproducible boards
//	--db <path>        - Records database (default: ~/.dotcraft/records.db)
//	--config <path>    - Custom dotcraft.yaml
//	--log-file <path>  - Write logs here while playing
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dotcraft",
	Short: "DotCraft - slide the dots onto the rings",
	Long: `DotCraft is a sliding puzzle played on a small grid. Drag a row or a
column to rotate it, and bring every dot onto a ring as fast as you can.

Available commands:
  play     - Level selector, then the game
  levels   - Show the configured levels
  records  - View best times and recent solves
  serve    - Start SSH server for remote play

Examples:
  dotcraft play
  dotcraft play --size 4 --targets 6
  dotcraft records --history 20
  dotcraft serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 10, "HUD refresh rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dotcraft/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom dotcraft.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play and records)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}
