package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/automata/conway"
	"github.com/vovakirdan/tui-automata/internal/automata/langton"
	"github.com/vovakirdan/tui-automata/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List simulations, ant presets and life patterns",
	Long:  `Shows every registered simulation with the seeds it can start from.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	sims := registry.List()

	if len(sims) == 0 {
		fmt.Println("No simulations available.")
		return
	}

	fmt.Println("Available simulations:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sims {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range sims {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Ant presets (--preset):")
	for _, name := range langton.Presets() {
		p, err := langton.LookupPreset(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-6s  %s\n", name, p.Description)
	}

	fmt.Println()
	fmt.Println("Life patterns (--pattern):")
	for _, name := range conway.Patterns() {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println()
	fmt.Println("Run 'automata run <id>' to watch a simulation.")
}
