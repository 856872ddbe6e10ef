package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a simulation interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a simulation.
Leaving a simulation with B/Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start simulation
  Tab/C        - Browse checkpoints
  Q            - Quit

Examples:
  automata menu
  automata menu --fps 30
  automata menu --db ./automata.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast (default from config)")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := runtimeConfig()

	logger, closeLog := viewerLogger()
	defer closeLog()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		simID := menuResult.SimID
		var from int64

		if menuResult.WantsCheckpoints {
			if store == nil {
				continue
			}
			chosen, goBack, cpErr := tui.RunCheckpoints(store, "", cfg.ScreenW, cfg.ScreenH)
			if cpErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", cpErr)
				continue
			}
			if chosen == nil {
				if goBack {
					continue // Back to menu
				}
				break // User quit from the browser
			}
			simID, from = chosen.SimID, chosen.ID
		}

		if simID == "" {
			break
		}

		sim, err := prepareSim(simID, cfg, store, from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		speed, err := resolveSpeed(flagSpeed, sim)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		model, err := tui.RunViewer(sim, cfg, tui.Options{Store: recorderStore(store), Logger: logger, Speed: speed})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
			continue
		}
		if model.IsQuitting() {
			break
		}
		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
