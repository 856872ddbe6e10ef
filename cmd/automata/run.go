package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/platform/tui"
)

var flagSpeed string

var runCmd = &cobra.Command{
	Use:   "run <sim>",
	Short: "Watch a simulation in the terminal",
	Long: `Start the interactive viewer for the specified simulation.

Controls:
  Space/P    - Pause / resume
  N          - Single step while paused
  0/1/2      - Speed: slow, normal, fast
  Ctrl+S     - Checkpoint now (also saves a screenshot)
  R          - Restart from the seed
  Q/Ctrl+C   - Quit

A checkpoint is stored at tick 0 and every checkpoint_every ticks.
Ant colonies pause when the highway is first detected.

Examples:
  automata run ants
  automata run ants --preset s8 --speed fast
  automata run life --pattern glider-gun
  automata run ants --config ./my-ants.yaml
  automata run ants --from 42`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	addSeedFlags(runCmd)
	runCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast (default from config)")
	runCmd.Flags().Int64Var(&flagFrom, "from", 0, "Resume from a stored checkpoint ID")
}

// addSeedFlags registers the flags that choose a simulation's start state.
func addSeedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	cmd.Flags().StringVar(&flagPreset, "preset", "", "Ant preset (see 'automata list')")
	cmd.Flags().StringVar(&flagPattern, "pattern", "", "Life pattern placed at the origin (see 'automata list')")
}

func runRun(_ *cobra.Command, args []string) {
	cfg := runtimeConfig()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sim, err := prepareSim(args[0], cfg, store, flagFrom)
	if err != nil {
		fail("%v", err)
	}
	speed, err := resolveSpeed(flagSpeed, sim)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog := viewerLogger()
	defer closeLog()

	opts := tui.Options{Store: recorderStore(store), Logger: logger, Speed: speed}
	if err := tui.Run(sim, cfg, opts); err != nil {
		fail("running simulation: %v", err)
	}
}

// viewerLogger logs to ~/.automata/automata.log while the terminal belongs
// to the viewer.
func viewerLogger() (*log.Logger, func()) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".automata")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "automata.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := newLogger("automata")
	logger.SetOutput(w)
	return logger, closeFn
}
