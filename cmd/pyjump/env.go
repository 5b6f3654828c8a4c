package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/platform/tui"
	"github.com/vovakirdan/pyjump/internal/progress"
	"github.com/vovakirdan/pyjump/internal/storage"
)

// Progress backends selectable with --progress.
const (
	progressSQLite = "sqlite"
	progressFile   = "file"
	progressMemory = "memory"
)

// appName names the per-user data directory of the file backend.
const appName = "pyjump"

// openEnv opens the score database and wires the chosen progress backend.
// The returned cleanup closes the database.
func openEnv() (tui.Env, func(), error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores disabled", "path", flagDBPath, "error", err)
		store = nil
	}

	env := tui.Env{
		Store:  store,
		Config: gameConfig,
		Logger: logger,
	}

	switch flagProgress {
	case progressSQLite:
		// Env falls back to the database on its own
	case progressFile:
		env.Progress = func(gameID string) progress.Store {
			f, fileErr := progress.OpenFile(appName, gameID)
			if fileErr != nil {
				logger.Warn("progress file unavailable", "game", gameID, "error", fileErr)
				return progress.NewBestEffort(nil, logger)
			}
			return progress.NewBestEffort(f, logger)
		}
	case progressMemory:
		memories := make(map[string]*progress.Memory)
		env.Progress = func(gameID string) progress.Store {
			m, ok := memories[gameID]
			if !ok {
				m = progress.NewMemory(1)
				memories[gameID] = m
			}
			return progress.NewBestEffort(m, logger)
		}
	default:
		if store != nil {
			store.Close()
		}
		return tui.Env{}, nil, fmt.Errorf("unknown progress backend %q (valid: sqlite, file, memory)", flagProgress)
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
	}
	return env, cleanup, nil
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig(lvl int) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
		Level:    lvl,
	}
}
