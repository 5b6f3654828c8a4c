// pyjump is a terminal platformer with a generated 50-level campaign.
//
// Usage:
//
//	pyjump play                 - Mode menu, level select and play
//	pyjump play <mode>          - Play a mode directly (--level to pick a level)
//	pyjump list                 - List available modes
//	pyjump levels <mode>        - Print the generated layout summary per level
//	pyjump simulate <mode>      - Run the simulation headless with scripted input
//	pyjump scores <mode>        - Show high scores for a mode
//	pyjump progress [reset]     - Show or reset unlocked levels
//	pyjump serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible enemy spawns
//	--db <path>           - Set database path (default: ~/.pyjump/pyjump.db)
//	--config <path>       - Custom platformer YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--progress <backend>  - Where unlocked levels live: sqlite, file, memory
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pyjump/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/pyjump/internal/games/platformer"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProgress   string
	flagLogLevel   string
)

// Set by PersistentPreRunE.
var (
	logger     *log.Logger
	gameConfig config.PlatformerConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pyjump",
	Short: "PyJump - a platformer in your terminal",
	Long: `PyJump is a side-view platformer played in the terminal. Every level
is generated from its number: platforms, coins, enemies and a guardian
in front of the goal flag. Clearing a level unlocks the next one.

Available commands:
  play      - Pick a mode and a level, then play
  list      - Show available modes
  levels    - Print the generated layout of each level
  simulate  - Run the simulation without a terminal UI
  scores    - View high scores
  progress  - Show or reset unlocked levels
  serve     - Start SSH server for remote play

Examples:
  pyjump play
  pyjump play platformer --level 12
  pyjump play --difficulty easy
  pyjump serve --ssh :2222
  pyjump scores platformer`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pyjump/pyjump.db", "Path to scores and progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagProgress, "progress", progressSQLite, "Progress backend: sqlite, file, memory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger and the game config shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "pyjump",
	})

	gameConfig, err = config.LoadPlatformer(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPlatformerPreset(&gameConfig, preset)

	logger.Debug("config loaded", "difficulty", preset, "levels", gameConfig.Levels.Max)
	return nil
}
