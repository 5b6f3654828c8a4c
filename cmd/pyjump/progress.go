package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pyjump/internal/progress"
	"github.com/vovakirdan/pyjump/internal/registry"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show unlocked levels per mode",
	Long: `Show the highest unlocked level of every mode in the selected
progress backend.

Examples:
  pyjump progress
  pyjump progress --progress file
  pyjump progress reset platformer`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset <mode>",
	Short: "Lock every level above level 1 again",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressResetCmd)
}

func runProgress(_ *cobra.Command, _ []string) error {
	env, cleanup, err := openEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Progress (%s backend)\n\n", flagProgress)
	for _, info := range registry.List() {
		game, err := env.Create(info.ID)
		if err != nil {
			return err
		}
		c, ok := game.(registry.Campaign)
		if !ok {
			continue
		}
		fmt.Printf("  %-20s %3d/%d\n", info.Title, c.Watermark(), c.MaxLevels())
	}
	return nil
}

func runProgressReset(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q", gameID)
	}

	env, cleanup, err := openEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	switch flagProgress {
	case progressSQLite:
		if env.Store == nil {
			return fmt.Errorf("database %s is unavailable", flagDBPath)
		}
		if err := env.Store.ResetProgress(gameID); err != nil {
			return err
		}
	case progressFile:
		f, err := progress.OpenFile(appName, gameID)
		if err != nil {
			return err
		}
		if err := f.SaveLevel(progress.FirstLevel); err != nil {
			return err
		}
	default:
		// Memory progress never outlives the process
	}

	logger.Info("progress reset", "game", gameID, "backend", flagProgress)
	fmt.Printf("%s: only level %d is unlocked now.\n", gameID, progress.FirstLevel)
	return nil
}
