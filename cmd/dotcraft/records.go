package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dotcraft/internal/platform/tui"
	"github.com/vovakirdan/dotcraft/internal/storage"
)

var (
	flagHistory      int
	flagInteractive  bool
	flagClearHistory bool
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show best times",
	Long: `Print the best time of every level, and optionally the most recent solves.

Examples:
  dotcraft records
  dotcraft records --history 20
  dotcraft records --interactive
  dotcraft records --clear-history`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagHistory, "history", 0, "Also list this many recent solves")
	recordsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse records in the records panel")
	recordsCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "Delete the solve history (best times are kept)")
}

func runRecords(_ *cobra.Command, _ []string) error {
	env, err := openLocalEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if flagClearHistory {
		if env.opts.Store == nil {
			return fmt.Errorf("records database is not available")
		}
		if err := env.opts.Store.ClearCompletions(); err != nil {
			return err
		}
		fmt.Println("Solve history cleared.")
		return nil
	}

	if flagInteractive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--interactive needs a terminal")
		}
		return tui.RunRecords(env.opts)
	}

	var stats []storage.LevelStats
	if env.opts.Store != nil {
		if stats, err = env.opts.Store.LevelStatistics(); err != nil {
			return err
		}
	}
	rows := tui.BuildRecordRows(env.opts.Config, env.opts.Records, stats)

	fmt.Println("Best times - DotCraft")
	fmt.Println()
	fmt.Printf("  %-14s  %-6s  %-9s  %s\n", "Level", "Solved", "Best", "Solves")
	fmt.Printf("  %-14s  %-6s  %-9s  %s\n", "-----", "------", "----", "------")
	for _, r := range rows {
		solved, best := "-", "-"
		if r.Entry.Solved {
			solved = "yes"
		}
		if r.Entry.HasBest {
			best = fmt.Sprintf("%.3fs", r.Entry.BestSeconds)
		}
		label := r.Level.Label()
		pad := max(14-len([]rune(label)), 0)
		fmt.Printf("  %s%*s  %-6s  %-9s  %d\n", label, pad, "", solved, best, r.Stats.Solves)
	}

	if flagHistory <= 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent solves")
	fmt.Println()
	if env.opts.Store == nil {
		fmt.Println("History is not available without the records database.")
		return nil
	}
	history, err := env.opts.Store.RecentCompletions(flagHistory)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dotcraft play' to set the first record!")
		return nil
	}
	fmt.Printf("  %-16s  %-8s  %-9s  %-5s  %s\n", "Date", "Level", "Time", "Moves", "Player")
	fmt.Printf("  %-16s  %-8s  %-9s  %-5s  %s\n", "----", "-----", "----", "-----", "------")
	for _, c := range history {
		player := c.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-16s  %-8s  %-9s  %-5d  %s\n",
			c.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d/%d", c.Size, c.Size, c.Targets),
			fmt.Sprintf("%.3fs", c.Seconds),
			c.Moves,
			player,
		)
	}
	return nil
}
