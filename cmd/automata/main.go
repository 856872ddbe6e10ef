// automata runs Conway's Game of Life and multi-ant Langton's Ant in the
// terminal, headless, over SSH or as a WebSocket feed.
//
// Usage:
//
//	automata list                 - List simulations, ant presets and life patterns
//	automata run <sim>            - Watch a simulation in the terminal
//	automata menu                 - Pick a simulation interactively
//	automata step <sim>           - Run headless for a number of ticks
//	automata survey               - Race every ant preset to the highway
//	automata checkpoints [sim]    - List, export, import and browse checkpoints
//	automata serve                - Start SSH server for remote viewing
//	automata stream <sim>         - Broadcast frames over WebSocket
//
// Global flags:
//
//	--fps <rate>         - Upper bound on ticks per second (default: 60)
//	--db <path>          - Set database path (default: ~/.automata/automata.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/storage"

	// Import sims to register them
	_ "github.com/vovakirdan/tui-automata/internal/sims/ants"
	_ "github.com/vovakirdan/tui-automata/internal/sims/life"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "TUI Automata - Cellular automata in your terminal",
	Long: `TUI Automata simulates Conway's Game of Life and Langton's Ant
on an unbounded lattice and watches ant colonies for the highway.

Available commands:
  list         - Show simulations, ant presets and life patterns
  run          - Watch a simulation in the terminal
  menu         - Interactive simulation picker
  step         - Headless run with progress logs
  survey       - Run every ant preset in parallel
  checkpoints  - Manage stored checkpoints
  serve        - Start SSH server for remote viewing
  stream       - Broadcast frames over WebSocket

Examples:
  automata list
  automata run ants --preset s8
  automata step ants --preset s8 --ticks 5000
  automata survey --ticks 12000
  automata serve --ssh :2222
  automata stream life --pattern glider-gun --addr :8080`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Upper bound on ticks per second")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.automata/automata.db", "Path to checkpoint database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(checkpointsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// newLogger creates a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the checkpoint database, or returns nil with a warning so
// simulations still run without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open checkpoint database: %v\n", err)
		return nil
	}
	return store
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
