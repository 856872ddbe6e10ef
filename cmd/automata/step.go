package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/runner"
)

var (
	flagTicks         uint64
	flagProgress      uint64
	flagStopOnHighway bool
)

var stepCmd = &cobra.Command{
	Use:   "step <sim>",
	Short: "Run a simulation headless",
	Long: `Advance a simulation without a terminal UI, logging progress and
storing checkpoints as configured.

The run ends after --ticks ticks, when the highway is detected (ants),
when the population dies out (life) or on Ctrl+C.

Examples:
  automata step ants --preset s8 --ticks 5000
  automata step ants --from 42 --ticks 1000
  automata step life --pattern r-pentomino --ticks 1200 --progress 100`,
	Args: cobra.ExactArgs(1),
	Run:  runStep,
}

func init() {
	addSeedFlags(stepCmd)
	stepCmd.Flags().Int64Var(&flagFrom, "from", 0, "Resume from a stored checkpoint ID")
	stepCmd.Flags().Uint64Var(&flagTicks, "ticks", 0, "Ticks to run (default from config, 0 = until stopped)")
	stepCmd.Flags().Uint64Var(&flagProgress, "progress", 0, "Ticks between progress logs (default from config, else 1000)")
	stepCmd.Flags().BoolVar(&flagStopOnHighway, "stop-on-highway", true, "Stop when the highway is detected")
}

func runStep(cmd *cobra.Command, args []string) {
	logger := newLogger("runner")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sim, err := prepareSim(args[0], core.DefaultConfig(), store, flagFrom)
	if err != nil {
		fail("%v", err)
	}

	rc := runConfig(sim)
	opts := runner.Options{
		MaxTicks:      rc.MaxTicks,
		ProgressEvery: rc.ProgressEvery,
		StopOnHighway: flagStopOnHighway,
		// A resumed run already has its starting state stored.
		NoInitialCheckpoint: flagFrom != 0,
	}
	if cmd.Flags().Changed("ticks") {
		opts.MaxTicks = flagTicks
	}
	if cmd.Flags().Changed("progress") {
		opts.ProgressEvery = flagProgress
	} else if opts.ProgressEvery == 0 {
		opts.ProgressEvery = 1000
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx, sim, runner.NewRecorder(recorderStore(store), logger), logger, opts)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%s: stopped (%s) at tick %d after %d ticks\n", res.SimID, res.Reason, res.Tick, res.Ticks())
	fmt.Printf("  population:  %d\n", res.Population)
	fmt.Printf("  checkpoints: %d\n", res.Checkpoints)
	if res.Highway > 0 {
		fmt.Printf("  highway:     tick %d\n", res.Highway)
	}
}
