package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/platform/tui"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/runner"
	"github.com/vovakirdan/tui-automata/internal/storage"
)

var (
	flagCheckpointLimit int
	flagBrowse          bool
)

var checkpointsCmd = &cobra.Command{
	Use:   "checkpoints [sim]",
	Short: "List, export, import and browse stored checkpoints",
	Long: `Display stored checkpoints, newest tick first. Without a sim every
simulation is listed.

With --browse an interactive table opens; Enter resumes the selected
checkpoint in the viewer.

Examples:
  automata checkpoints
  automata checkpoints ants --limit 20
  automata checkpoints ants --browse
  automata checkpoints export 42 ./s8-3405.yaml
  automata checkpoints import ants ./s8-3405.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheckpoints,
}

var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write a checkpoint payload to a file",
	Args:  cobra.ExactArgs(2),
	Run:   runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <sim> <file>",
	Short: "Store a snapshot file as a checkpoint",
	Long: `Validate a snapshot file by restoring it into a fresh simulation, then
store it with the "import" label.`,
	Args: cobra.ExactArgs(2),
	Run:  runImport,
}

func init() {
	checkpointsCmd.Flags().IntVar(&flagCheckpointLimit, "limit", 50, "Maximum checkpoints to list")
	checkpointsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive checkpoint browser")
	checkpointsCmd.AddCommand(exportCmd)
	checkpointsCmd.AddCommand(importCmd)
}

// mustStore opens the database or exits; checkpoint commands need it.
func mustStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening checkpoint database: %v", err)
	}
	return store
}

func runCheckpoints(_ *cobra.Command, args []string) {
	simID := ""
	if len(args) == 1 {
		simID = args[0]
		if !registry.Exists(simID) {
			fail("unknown simulation %q (run 'automata list')", simID)
		}
	}

	store := mustStore()
	defer store.Close()

	if flagBrowse {
		browseCheckpoints(store, simID)
		return
	}

	entries, err := store.ListCheckpoints(simID, flagCheckpointLimit)
	if err != nil {
		fail("retrieving checkpoints: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No checkpoints stored yet.")
		fmt.Println()
		fmt.Println("Run 'automata run <sim>' or 'automata step <sim>' to create some.")
		return
	}

	fmt.Printf("  %-6s  %-5s  %-8s  %-8s  %-8s  %s\n", "ID", "Sim", "Tick", "Label", "Bytes", "Saved")
	fmt.Printf("  %-6s  %-5s  %-8s  %-8s  %-8s  %s\n", "--", "---", "----", "-----", "-----", "-----")
	for _, c := range entries {
		fmt.Printf("  %-6d  %-5s  %-8d  %-8s  %-8d  %s\n",
			c.ID, c.SimID, c.Step, c.Label, c.Size, c.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// browseCheckpoints opens the table and resumes the chosen checkpoint.
func browseCheckpoints(store *storage.Store, simID string) {
	cfg := runtimeConfig()
	chosen, _, err := tui.RunCheckpoints(store, simID, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		fail("%v", err)
	}
	if chosen == nil {
		return
	}

	sim, err := prepareSim(chosen.SimID, cfg, store, chosen.ID)
	if err != nil {
		fail("%v", err)
	}
	speed, err := resolveSpeed("", sim)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog := viewerLogger()
	defer closeLog()

	if err := tui.Run(sim, cfg, tui.Options{Store: store, Logger: logger, Speed: speed}); err != nil {
		fail("running simulation: %v", err)
	}
}

func runExport(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid checkpoint id %q", args[0])
	}

	store := mustStore()
	defer store.Close()

	cp, err := store.Checkpoint(id)
	if err != nil {
		fail("%v", err)
	}
	if err := os.WriteFile(args[1], cp.Payload, 0o644); err != nil {
		fail("writing %s: %v", args[1], err)
	}
	fmt.Printf("Exported %s checkpoint %d (tick %d) to %s\n", cp.SimID, cp.ID, cp.Step, args[1])
}

func runImport(_ *cobra.Command, args []string) {
	simID, path := args[0], args[1]
	if !registry.Exists(simID) {
		fail("unknown simulation %q (run 'automata list')", simID)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fail("reading %s: %v", path, err)
	}

	sim, err := registry.Create(simID)
	if err != nil {
		fail("%v", err)
	}
	if err := sim.Reset(core.DefaultConfig()); err != nil {
		fail("%v", err)
	}
	if err := sim.Restore(data); err != nil {
		fail("%s is not a valid %s snapshot: %v", path, simID, err)
	}

	store := mustStore()
	defer store.Close()

	tick := sim.State().Tick
	id, err := store.SaveCheckpoint(simID, runner.LabelImport, tick, data)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Imported %s as %s checkpoint %d (tick %d)\n", path, simID, id, tick)
}
