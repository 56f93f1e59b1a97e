package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fireworks/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available shows",
	Long:  `Shows a list of all registered shows.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	shows := registry.List()

	if len(shows) == 0 {
		fmt.Println("No shows available.")
		return
	}

	fmt.Println("Available shows:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range shows {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range shows {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'fireworks play <id>' to start a show.")
}
