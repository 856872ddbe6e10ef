package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/platform/stream"
)

var (
	flagStreamAddr string
	flagStreamRate int
)

var streamCmd = &cobra.Command{
	Use:   "stream <sim>",
	Short: "Broadcast a simulation over WebSocket",
	Long: `Run a simulation and broadcast every tick as a JSON frame.

Endpoints:
  /ws     - WebSocket feed; send {"action":"pause"|"step"|"checkpoint"|"restart"}
  /frame  - Latest frame as a single JSON document

Examples:
  automata stream ants --preset s8 --addr :8080
  automata stream life --pattern glider-gun --rate 10
  automata stream ants --from 42`,
	Args: cobra.ExactArgs(1),
	Run:  runStream,
}

func init() {
	addSeedFlags(streamCmd)
	streamCmd.Flags().Int64Var(&flagFrom, "from", 0, "Resume from a stored checkpoint ID")
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", ":8080", "HTTP listen address (host:port)")
	streamCmd.Flags().IntVar(&flagStreamRate, "rate", 20, "Ticks broadcast per second")
}

func runStream(_ *cobra.Command, args []string) {
	logger := newLogger("automata-stream")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := stream.DefaultConfig()
	cfg.Address = flagStreamAddr
	cfg.TickRate = flagStreamRate
	cfg.Runtime.TickRate = flagFPS

	sim, err := prepareSim(args[0], cfg.Runtime, store, flagFrom)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := stream.NewServer(sim, cfg, recorderStore(store), logger)
	if err := server.Run(ctx); err != nil {
		fail("%v", err)
	}
}
