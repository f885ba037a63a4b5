package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/dotcraft/internal/config"
	"github.com/vovakirdan/dotcraft/internal/core"
	"github.com/vovakirdan/dotcraft/internal/games/dotcraft"
	"github.com/vovakirdan/dotcraft/internal/platform/tui"
	"github.com/vovakirdan/dotcraft/internal/storage"
)

// localEnv is everything a local command needs: configuration, records and
// a logger that never writes to the terminal being drawn on.
type localEnv struct {
	opts    tui.Options
	logFile *os.File
}

// openLocalEnv loads configuration and records. A database that cannot be
// opened is not fatal: records then live in memory only.
func openLocalEnv() (*localEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	env := &localEnv{}
	logger := log.New(io.Discard)
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		env.logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "dotcraft",
		})
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	env.opts = tui.Options{
		Config:  cfg,
		Runtime: runtime,
		Records: dotcraft.NewRecordStore(),
		Logger:  logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		logger.Warn("records kept in memory", "error", err)
		return env, nil
	}
	// On a load error the store starts empty but still saves new records.
	records, err := dotcraft.OpenRecordStore(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load saved records, starting empty: %v\n", err)
		logger.Warn("could not load records, starting empty", "error", err)
	}
	env.opts.Records = records
	env.opts.Store = store
	return env, nil
}

func (e *localEnv) Close() {
	if e.opts.Store != nil {
		e.opts.Store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}
