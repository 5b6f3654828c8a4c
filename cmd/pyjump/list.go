package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pyjump/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all game modes with their campaign length.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	// Print games
	for _, g := range games {
		levels := "-"
		if game, err := registry.Create(g.ID); err == nil {
			if c, ok := game.(registry.Campaign); ok {
				levels = fmt.Sprintf("%d", c.MaxLevels())
			}
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, g.ID, levels, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pyjump play <id>' to play a mode.")
}
