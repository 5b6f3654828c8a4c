package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pyjump/internal/platform/tui"
	"github.com/vovakirdan/pyjump/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play PyJump",
	Long: `Start playing. Without a mode, opens the mode menu and level select.
With a mode, starts it directly at --level (default: highest unlocked).

Controls:
  A/D, Left/Right  - Move
  W/Up/Space       - Jump
  E                - Activate stored power-up
  P                - Pause
  Enter            - Confirm on outcome screens
  R                - Retry after death
  B/Esc            - Back to level select
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More health, softer hits, slower enemies
  normal - Configured values
  hard   - Less health, harder hits, faster enemies

Examples:
  pyjump play
  pyjump play platformer --level 5
  pyjump play platformer_legacy --difficulty hard
  pyjump play --progress memory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (0 = highest unlocked)")
}

func runPlay(_ *cobra.Command, args []string) error {
	env, cleanup, err := openEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		return tui.RunSession(env, runtimeConfig(1))
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'pyjump list' to see available modes.")
		return fmt.Errorf("unknown mode %q", gameID)
	}

	game, err := env.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	lvl := flagLevel
	if c, ok := game.(registry.Campaign); ok {
		if lvl == 0 {
			lvl = c.Watermark()
		}
		if lvl > c.Watermark() {
			return fmt.Errorf("level %d is locked (highest unlocked: %d)", lvl, c.Watermark())
		}
	}

	if _, err := tui.Run(game, env, runtimeConfig(max(lvl, 1))); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
